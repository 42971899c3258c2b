package services

import (
	"errors"

	"sitecms/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct{}

func NewProductService() *ProductService {
	return &ProductService{}
}

// GetProducts returns products, optionally filtered by category
func (s *ProductService) GetProducts(category string) ([]models.Product, error) {
	q := models.DB.Order("display_order, name")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a specific product by ID
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := models.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(product *models.Product) error {
	return models.DB.Create(product).Error
}

// UpdateProduct saves changes to an existing product
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return models.DB.Save(product).Error
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(id uint) error {
	var product models.Product
	if err := models.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return models.DB.Delete(&product).Error
}
