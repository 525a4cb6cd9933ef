package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceAuditLog is the audit-trail record emitted for every committed order
// line item. Written by the background audit worker, never by request code.
type PriceAuditLog struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,8)" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(18,8)" json:"price"`
	IsReturn  bool            `json:"is_return"`
	Source    AddedViaType    `json:"source"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
