package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Resolved during imports by case-insensitive name.
type Product struct {
	ID    uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Name  string          `gorm:"not null;index" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(18,8)" json:"price"`
	Unit  *string         `json:"unit"`

	Active *bool `gorm:"default:true" json:"active"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
