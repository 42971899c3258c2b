package services

import (
	"errors"

	"sitecms/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct{}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// GetProfiles returns all profiles
func (s *ProfileService) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := models.DB.Order("full_name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfile returns a specific profile by ID
func (s *ProfileService) GetProfile(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := models.DB.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile creates a new profile
func (s *ProfileService) CreateProfile(profile *models.Profile) error {
	return models.DB.Create(profile).Error
}

// UpdateProfile saves changes to an existing profile
func (s *ProfileService) UpdateProfile(profile *models.Profile) error {
	return models.DB.Save(profile).Error
}

// DeleteProfile deletes a profile
func (s *ProfileService) DeleteProfile(id uint) error {
	var profile models.Profile
	if err := models.DB.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return models.DB.Delete(&profile).Error
}
