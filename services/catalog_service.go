package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

// CatalogService manages the car, track and race-parameter catalogs the
// allocation algorithms draw from. Mutations are admin-only.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) requireAdmin(actorID uint) error {
	var actor models.User
	if err := s.db.Preload("Roles").First(&actor, actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found with ID: %d", actorID)
		}
		return err
	}
	if !actor.IsAdmin() {
		return apperr.Forbidden("only administrators can modify the catalog")
	}
	return nil
}

func (s *CatalogService) ListCars() ([]models.Car, error) {
	var cars []models.Car
	if err := s.db.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (s *CatalogService) GetCar(carID uint) (*models.Car, error) {
	var car models.Car
	if err := s.db.First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("car not found with ID: %d", carID)
		}
		return nil, err
	}
	return &car, nil
}

func (s *CatalogService) CreateCar(name, pictureURL string, actorID uint) (*models.Car, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.BadRequest("car name is required")
	}
	car := models.Car{Name: name, PictureURL: pictureURL}
	if err := s.db.Create(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("car already exists: %s", name)
		}
		return nil, err
	}
	log.Printf("Car %s added to catalog", name)
	return &car, nil
}

func (s *CatalogService) DeleteCar(carID, actorID uint) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	car, err := s.GetCar(carID)
	if err != nil {
		return err
	}
	return s.db.Delete(car).Error
}

func (s *CatalogService) ListTracks() ([]models.Track, error) {
	var tracks []models.Track
	if err := s.db.Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

func (s *CatalogService) GetTrack(trackID uint) (*models.Track, error) {
	var track models.Track
	if err := s.db.First(&track, trackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("track not found with ID: %d", trackID)
		}
		return nil, err
	}
	return &track, nil
}

func (s *CatalogService) CreateTrack(name, pictureURL string, actorID uint) (*models.Track, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.BadRequest("track name is required")
	}
	track := models.Track{Name: name, PictureURL: pictureURL}
	if err := s.db.Create(&track).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("track already exists: %s", name)
		}
		return nil, err
	}
	log.Printf("Track %s added to catalog", name)
	return &track, nil
}

func (s *CatalogService) DeleteTrack(trackID, actorID uint) error {
	if err := s.requireAdmin(actorID); err != nil {
		return err
	}
	track, err := s.GetTrack(trackID)
	if err != nil {
		return err
	}
	return s.db.Delete(track).Error
}

func (s *CatalogService) ListRaceParameters() ([]models.RaceParameter, error) {
	var params []models.RaceParameter
	if err := s.db.Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

func (s *CatalogService) CreateRaceParameter(name, description string, actorID uint) (*models.RaceParameter, error) {
	if err := s.requireAdmin(actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.BadRequest("parameter name is required")
	}
	param := models.RaceParameter{Name: name, Description: description}
	if err := s.db.Create(&param).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("parameter already exists: %s", name)
		}
		return nil, err
	}
	return &param, nil
}
