package repositories

import (
	"strings"

	"sales-management-backend/db/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	ListActiveCompanies() ([]models.Company, error)
	GetFilteredCompanies(pageSize int, offset int, filters map[string]string) ([]models.Company, int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{
		db: db,
	}
}

// ListActiveCompanies loads the whole active company table, branches
// included, for the import pipeline's entity lookup.
func (r *companyRepository) ListActiveCompanies() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Where("active = ?", true).Find(&companies).Error
	return companies, err
}

// GetFilteredCompanies retrieves companies with filtering and pagination
func (r *companyRepository) GetFilteredCompanies(pageSize int, offset int, filters map[string]string) ([]models.Company, int64, error) {
	var companies []models.Company
	var total int64

	db := r.db.Model(&models.Company{})

	for key, value := range filters {
		switch key {
		case "name":
			db = db.Where("name ILIKE ?", "%"+value+"%")
		case "area":
			db = db.Where("area ILIKE ?", "%"+value+"%")
		case "is_branch":
			if strings.ToLower(value) == "true" {
				db = db.Where("is_branch = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("is_branch = ?", false)
			}
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

	if err := db.Limit(pageSize).Offset(offset).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}
