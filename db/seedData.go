package db

import (
	"sales-management-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedProducts populates the catalog with a starter product set. Existing
// names are left untouched so the seeder is safe to run repeatedly.
func SeedProducts(db *gorm.DB, createdBy string) error {
	active := true
	each := "each"

	products := []models.Product{
		{Name: "Widget", Price: decimal.NewFromInt(10), Unit: &each, Active: &active, CreatedBy: createdBy},
		{Name: "Gadget", Price: decimal.NewFromFloat(24.50), Unit: &each, Active: &active, CreatedBy: createdBy},
		{Name: "Bracket", Price: decimal.NewFromFloat(3.75), Unit: &each, Active: &active, CreatedBy: createdBy},
	}

	for _, p := range products {
		var existing models.Product
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			p.ID = uuid.New()
			if err := db.Create(&p).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedCompanies creates a demo parent company with one branch.
func SeedCompanies(db *gorm.DB, createdBy string) error {
	active := true

	var existing models.Company
	err := db.Where("name = ?", "Acme Trading").First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	parent := models.Company{
		ID:        uuid.New(),
		Name:      "Acme Trading",
		IsBranch:  false,
		Active:    &active,
		CreatedBy: createdBy,
	}
	if err := db.Create(&parent).Error; err != nil {
		return err
	}

	branch := models.Company{
		ID:              uuid.New(),
		Name:            "Acme Trading Downtown",
		IsBranch:        true,
		ParentCompanyID: &parent.ID,
		Active:          &active,
		CreatedBy:       createdBy,
	}
	return db.Create(&branch).Error
}

// SeedInitialData runs every seeder. Intended for development environments.
func SeedInitialData(db *gorm.DB, createdBy string) error {
	if err := SeedCompanies(db, createdBy); err != nil {
		return err
	}
	return SeedProducts(db, createdBy)
}
