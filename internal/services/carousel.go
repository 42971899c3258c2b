package services

import (
	"errors"

	"sitecms/internal/models"

	"gorm.io/gorm"
)

var ErrSlideNotFound = errors.New("carousel slide not found")

type CarouselService struct{}

func NewCarouselService() *CarouselService {
	return &CarouselService{}
}

// GetSlides returns all slides in display order
func (s *CarouselService) GetSlides() ([]models.CarouselSlide, error) {
	var slides []models.CarouselSlide
	if err := models.DB.Order("display_order").Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

// CreateSlide adds a slide
func (s *CarouselService) CreateSlide(slide *models.CarouselSlide) error {
	return models.DB.Create(slide).Error
}

// UpdateSlide saves changes to a slide
func (s *CarouselService) UpdateSlide(slide *models.CarouselSlide) error {
	return models.DB.Save(slide).Error
}

// DeleteSlide removes a slide
func (s *CarouselService) DeleteSlide(id uint) error {
	var slide models.CarouselSlide
	if err := models.DB.First(&slide, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlideNotFound
		}
		return err
	}
	return models.DB.Delete(&slide).Error
}

// GetSlide returns a specific slide by ID
func (s *CarouselService) GetSlide(id uint) (*models.CarouselSlide, error) {
	var slide models.CarouselSlide
	if err := models.DB.First(&slide, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlideNotFound
		}
		return nil, err
	}
	return &slide, nil
}
