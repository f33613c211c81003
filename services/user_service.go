package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found with ID: %d", userID)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found: %s", username)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateProfile(userID uint, username, email *string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username or email already taken")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(userID uint) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	return s.db.Select("Roles").Delete(user).Error
}

func (s *UserService) AssignRole(userID, roleID uint) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found with ID: %d", roleID)
		}
		return nil, err
	}
	for i := range user.Roles {
		if user.Roles[i].ID == roleID {
			return nil, apperr.Conflict("user already has role %s", role.Name)
		}
	}
	if err := s.db.Model(user).Association("Roles").Append(&role); err != nil {
		return nil, err
	}
	log.Printf("Role %s assigned to user %d", role.Name, userID)
	return s.GetByID(userID)
}

func (s *UserService) RemoveRole(userID, roleID uint) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found with ID: %d", roleID)
		}
		return nil, err
	}
	owned := false
	for i := range user.Roles {
		if user.Roles[i].ID == roleID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, apperr.BadRequest("user does not have role %s", role.Name)
	}
	if err := s.db.Model(user).Association("Roles").Delete(&role); err != nil {
		return nil, err
	}
	log.Printf("Role %s removed from user %d", role.Name, userID)
	return s.GetByID(userID)
}
