package config

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/models"
)

// Seed creates the reserved roles, the default admin account and the
// starter catalogs if they do not exist yet. Safe to run on every boot.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedCatalogs(db)
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{
			Name:        models.RoleGreatAdmin,
			Description: "Super administrator with every permission",
			Permissions: []models.Permission{models.PermissionAll},
		},
		{
			Name:        "PARTY_MANAGER",
			Description: "Can create and manage parties and races",
			Permissions: []models.Permission{
				models.PermissionCreateParty,
				models.PermissionJoinParty,
				models.PermissionManageParty,
				models.PermissionViewParty,
				models.PermissionCreateRace,
				models.PermissionStartRace,
				models.PermissionJoinRace,
				models.PermissionLeaveRace,
				models.PermissionViewRace,
				models.PermissionSubmitScore,
				models.PermissionViewScore,
				models.PermissionViewCars,
				models.PermissionViewTracks,
				models.PermissionViewStatistics,
				models.PermissionViewHistory,
				models.PermissionUpdateOwnProfile,
				models.PermissionViewOwnProfile,
			},
		},
		{
			Name:        "RACER",
			Description: "Regular player: joins parties and races, submits scores",
			Permissions: []models.Permission{
				models.PermissionJoinParty,
				models.PermissionViewParty,
				models.PermissionJoinRace,
				models.PermissionLeaveRace,
				models.PermissionViewRace,
				models.PermissionSubmitScore,
				models.PermissionViewScore,
				models.PermissionViewCars,
				models.PermissionViewTracks,
				models.PermissionViewHistory,
				models.PermissionUpdateOwnProfile,
				models.PermissionViewOwnProfile,
			},
		},
	}

	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("Seeded role %s", role.Name)
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleGreatAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Email:    getEnv("ADMIN_EMAIL", "admin@burapp.local"),
		Password: string(hashed),
		Roles:    []models.Role{adminRole},
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded default admin user")
	return nil
}

func seedCatalogs(db *gorm.DB) error {
	cars := []string{"Wild Wing", "Standard Kart", "Mach 8", "Pipe Frame", "Circuit Special", "Badwagon"}
	for _, name := range cars {
		var count int64
		if err := db.Model(&models.Car{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&models.Car{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	tracks := []string{"Rainbow Road", "Moo Moo Meadows", "Bowser's Castle", "Toad Harbor", "Dolphin Shoals", "Electrodrome"}
	for _, name := range tracks {
		var count int64
		if err := db.Model(&models.Track{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&models.Track{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	parameters := []models.RaceParameter{
		{Name: "MIRROR_MODE", Description: "Tracks are mirrored left to right"},
		{Name: "NO_ITEMS", Description: "Item boxes are disabled"},
		{Name: "HARD_CPU", Description: "Computer opponents race at maximum difficulty"},
		{Name: "DOUBLE_SPEED", Description: "Engine class bumped one level up"},
	}
	for _, param := range parameters {
		var count int64
		if err := db.Model(&models.RaceParameter{}).Where("name = ?", param.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&param).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
