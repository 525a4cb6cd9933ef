package repositories

import (
	"strings"

	"sales-management-backend/db/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	ListActiveProducts() ([]models.Product, error)
	GetFilteredProducts(pageSize int, offset int, filters map[string]string) ([]models.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

// ListActiveProducts loads the active product catalog for the import
// pipeline's entity lookup.
func (r *productRepository) ListActiveProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ?", true).Find(&products).Error
	return products, err
}

// GetFilteredProducts retrieves products with filtering and pagination
func (r *productRepository) GetFilteredProducts(pageSize int, offset int, filters map[string]string) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	db := r.db.Model(&models.Product{})

	for key, value := range filters {
		switch key {
		case "name":
			db = db.Where("name ILIKE ?", "%"+value+"%")
		case "active":
			if strings.ToLower(value) == "true" {
				db = db.Where("active = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("active = ?", false)
			}
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(pageSize).Offset(offset).Order("name ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
