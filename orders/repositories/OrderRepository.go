package repositories

import (
	"strings"

	"sales-management-backend/db/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	FindOrdersByImportHashes(hashes []string) ([]models.Order, error)
	BulkCreateOrders(orders []models.Order) error
	LogBulkImportErrors(rows []models.BulkImportErrorOrders) error
	LogEmailSent(emailLog *models.EmailLog) error
	GetFilteredOrders(pageSize int, offset int, filters map[string]string) ([]models.Order, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// FindOrdersByImportHashes returns stored orders matching any of the given
// content fingerprints. Callers chunk the hash list to keep queries bounded.
func (r *orderRepository) FindOrdersByImportHashes(hashes []string) ([]models.Order, error) {
	if len(hashes) == 0 {
		return nil, nil
	}
	var orders []models.Order
	err := r.db.Where("import_hash IN ?", hashes).Find(&orders).Error
	return orders, err
}

// BulkCreateOrders inserts the given orders and their line items in one
// transaction. The caller decides the chunk size.
func (r *orderRepository) BulkCreateOrders(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&orders).Error
	})
}

func (r *orderRepository) LogBulkImportErrors(rows []models.BulkImportErrorOrders) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *orderRepository) LogEmailSent(emailLog *models.EmailLog) error {
	return r.db.Create(emailLog).Error
}

// GetFilteredOrders retrieves orders with filtering and pagination
func (r *orderRepository) GetFilteredOrders(pageSize int, offset int, filters map[string]string) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	db := r.db.Model(&models.Order{})

	for key, value := range filters {
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToUpper(value))
		case "payment_status":
			db = db.Where("payment_status = ?", strings.ToUpper(value))
		case "company_id":
			db = db.Where("company_id = ?", value)
		case "added_via":
			db = db.Where("added_via = ?", strings.ToUpper(value))
		case "area":
			db = db.Where("area ILIKE ?", "%"+value+"%")
		case "start_date":
			db = db.Where("Date(order_date) >= ?", value)
		case "end_date":
			db = db.Where("Date(order_date) <= ?", value)
		case "created_by":
			db = db.Where("created_by ILIKE ?", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Preload("Items").Order("created_at DESC")
	if pageSize > 0 {
		db = db.Limit(pageSize).Offset(offset)
	}
	if err := db.Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
