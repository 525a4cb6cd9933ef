package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus defines the fulfilment state of an order.
type OrderStatus string

const (
	PendingOrderStatus   OrderStatus = "PENDING"
	DeliveredOrderStatus OrderStatus = "DELIVERED"
	CancelledOrderStatus OrderStatus = "CANCELLED"
)

// PaymentStatus defines the settlement state of an order.
type PaymentStatus string

const (
	PaidPaymentStatus    PaymentStatus = "PAID"
	PendingPaymentStatus PaymentStatus = "PENDING"
)

// DiscountType distinguishes fixed-amount from percentage line discounts.
type DiscountType string

const (
	FixedDiscountType      DiscountType = "FIXED"
	PercentageDiscountType DiscountType = "PERCENTAGE"
)

// AddedViaType records how a record entered the system.
type AddedViaType string

const (
	ManualAddedViaType AddedViaType = "MANUAL"
	BulkAddedViaType   AddedViaType = "BULK_IMPORT"
)

// Order is a committed composite order, possibly assembled from several
// imported rows sharing the same company and invoice number.
type Order struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	BranchID  *uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	Company   *Company   `gorm:"foreignKey:CompanyID" json:"-"`
	Branch    *Company   `gorm:"foreignKey:BranchID" json:"-"`

	Area      string    `json:"area"`
	OrderDate time.Time `json:"order_date"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(18,8)" json:"subtotal"`
	TotalTax   decimal.Decimal `gorm:"type:decimal(18,8)" json:"total_tax"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(18,8)" json:"grand_total"`
	Total      decimal.Decimal `gorm:"type:decimal(18,8)" json:"total"`

	// ImportHash is the content fingerprint used for idempotent reimports.
	ImportHash string `gorm:"index" json:"import_hash"`

	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	AddedVia      AddedViaType  `json:"added_via"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is one line of an order. Quantity is always positive; returns are
// flagged with IsReturn and subtracted during aggregation.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"-"`

	Quantity      decimal.Decimal `gorm:"type:decimal(18,8)" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(18,8)" json:"price"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(18,8)" json:"tax_rate"`
	DiscountType  *DiscountType   `json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(18,8)" json:"discount_value"`
	IsReturn      bool            `gorm:"default:false" json:"is_return"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(18,8)" json:"line_total"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
