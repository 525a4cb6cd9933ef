package repositories

import (
	"sales-management-backend/db/models"

	"gorm.io/gorm"
)

type PriceAuditRepository interface {
	CreateBatch(entries []models.PriceAuditLog) error
	GetFilteredPriceAudits(pageSize int, offset int, filters map[string]string) ([]models.PriceAuditLog, int64, error)
}

type priceAuditRepository struct {
	db *gorm.DB
}

func NewPriceAuditRepository(db *gorm.DB) PriceAuditRepository {
	return &priceAuditRepository{
		db: db,
	}
}

// CreateBatch writes one batch of audit entries. Called by the background
// audit worker, one call per import.
func (r *priceAuditRepository) CreateBatch(entries []models.PriceAuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

// GetFilteredPriceAudits retrieves audit entries with filtering and pagination
func (r *priceAuditRepository) GetFilteredPriceAudits(pageSize int, offset int, filters map[string]string) ([]models.PriceAuditLog, int64, error) {
	var entries []models.PriceAuditLog
	var total int64

	db := r.db.Model(&models.PriceAuditLog{})

	for key, value := range filters {
		switch key {
		case "order_id":
			db = db.Where("order_id = ?", value)
		case "product_id":
			db = db.Where("product_id = ?", value)
		case "start_date":
			db = db.Where("Date(created_at) >= ?", value)
		case "end_date":
			db = db.Where("Date(created_at) <= ?", value)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
