package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BulkImportErrorType string

const (
	MissingEntityErrorType  BulkImportErrorType = "MISSING_ENTITY"
	InvalidDataErrorType    BulkImportErrorType = "INVALID_DATA"
	DuplicateErrorType      BulkImportErrorType = "DUPLICATE"
	InfrastructureErrorType BulkImportErrorType = "INFRASTRUCTURE"
)

// BulkImportErrorOrders records one diagnostic per offending row of a bulk
// order import. SuggestedPayload carries a ready-to-create entity body so the
// frontend can offer one-click remediation for missing companies/products.
type BulkImportErrorOrders struct {
	ID               uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	RowIndex         int                 `json:"row_index"`
	CompanyName      string              `json:"company_name"`
	ProductName      string              `json:"product_name"`
	Reason           string              `json:"reason"`
	ErrorType        BulkImportErrorType `json:"error_type"`
	Blocking         bool                `json:"blocking"`
	SuggestedPayload datatypes.JSON      `json:"suggested_payload"`
	AddedVia         AddedViaType        `json:"added_via"`
	CreatedBy        string              `json:"created_by"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
