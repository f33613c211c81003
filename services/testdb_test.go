package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jakemelvin/burApp/models"
	"github.com/jakemelvin/burApp/randutil"
)

// newTestDB opens an isolated in-memory database per test. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey,
// matching the production postgres configuration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Party{},
		&models.PartyMember{},
		&models.Race{},
		&models.Attribution{},
		&models.Score{},
		&models.Car{},
		&models.Track{},
		&models.RaceParameter{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// testRNG returns a deterministic randomness source for allocation code,
// built the same way as the production one.
func testRNG(seed uint64) *rand.Rand {
	return randutil.NewRand(seed, seed)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createTestAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := createTestUser(t, db, username)
	var role models.Role
	err := db.Where("name = ?", models.RoleGreatAdmin).First(&role).Error
	if err != nil {
		role = models.Role{
			Name:        models.RoleGreatAdmin,
			Permissions: []models.Permission{models.PermissionAll},
		}
		if err := db.Create(&role).Error; err != nil {
			t.Fatalf("failed to create admin role: %v", err)
		}
	}
	if err := db.Model(user).Association("Roles").Append(&role); err != nil {
		t.Fatalf("failed to assign admin role: %v", err)
	}
	return user
}

func seedCatalog(t *testing.T, db *gorm.DB, cars, tracks int) {
	t.Helper()
	for i := 1; i <= cars; i++ {
		if err := db.Create(&models.Car{Name: fmt.Sprintf("Car %d", i)}).Error; err != nil {
			t.Fatalf("failed to seed car: %v", err)
		}
	}
	for i := 1; i <= tracks; i++ {
		if err := db.Create(&models.Track{Name: fmt.Sprintf("Track %d", i)}).Error; err != nil {
			t.Fatalf("failed to seed track: %v", err)
		}
	}
}
