package services

import (
	"errors"

	"sitecms/internal/models"

	"gorm.io/gorm"
)

var ErrBranchNotFound = errors.New("branch not found")

type BranchService struct{}

func NewBranchService() *BranchService {
	return &BranchService{}
}

// GetBranches returns all branches ordered by city then name
func (s *BranchService) GetBranches() ([]models.Branch, error) {
	var branches []models.Branch
	if err := models.DB.Order("city, name").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// GetBranch returns a specific branch by ID
func (s *BranchService) GetBranch(id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := models.DB.First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// CreateBranch creates a new branch
func (s *BranchService) CreateBranch(branch *models.Branch) error {
	return models.DB.Create(branch).Error
}

// UpdateBranch saves changes to an existing branch
func (s *BranchService) UpdateBranch(branch *models.Branch) error {
	return models.DB.Save(branch).Error
}

// DeleteBranch deletes a branch
func (s *BranchService) DeleteBranch(id uint) error {
	var branch models.Branch
	if err := models.DB.First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBranchNotFound
		}
		return err
	}
	return models.DB.Delete(&branch).Error
}
