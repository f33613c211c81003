package services

import (
	"errors"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

// Role names double as authorities, so they must stay machine-friendly.
var roleNamePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) GetAll() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) GetByID(roleID uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found with ID: %d", roleID)
		}
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) GetByName(name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found: %s", name)
		}
		return nil, err
	}
	return &role, nil
}

func normalizeRoleName(name string) string {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	return strings.Join(strings.Fields(normalized), "_")
}

func (s *RoleService) Create(name, description string, permissions []models.Permission) (*models.Role, error) {
	normalized := normalizeRoleName(name)
	if normalized == "" {
		return nil, apperr.BadRequest("role name is required")
	}
	if !roleNamePattern.MatchString(normalized) {
		return nil, apperr.BadRequest("invalid role name, use letters, numbers, spaces or underscores only")
	}
	if normalized == models.RoleGreatAdmin {
		return nil, apperr.BadRequest("cannot create %s role", models.RoleGreatAdmin)
	}
	role := models.Role{
		Name:        normalized,
		Description: description,
		Permissions: permissions,
	}
	if err := s.db.Create(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("role already exists: %s", normalized)
		}
		return nil, err
	}
	log.Printf("Role %s created", normalized)
	return &role, nil
}

func (s *RoleService) Update(roleID uint, description *string, permissions []models.Permission) (*models.Role, error) {
	role, err := s.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role.IsReserved() {
		return nil, apperr.BadRequest("cannot modify %s role", models.RoleGreatAdmin)
	}
	if description != nil {
		role.Description = *description
	}
	if permissions != nil {
		role.Permissions = permissions
	}
	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a non-reserved role, detaching it from every user first
// so no dangling role references survive.
func (s *RoleService) Delete(roleID uint) error {
	role, err := s.GetByID(roleID)
	if err != nil {
		return err
	}
	if role.IsReserved() {
		return apperr.BadRequest("cannot delete %s role", models.RoleGreatAdmin)
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_roles WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, role.ID).Error
	})
	if err != nil {
		return err
	}
	log.Printf("Role %s deleted", role.Name)
	return nil
}
