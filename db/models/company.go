package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a customer the system sells to. Branches are companies
// whose financials roll up to a parent company.
type Company struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	Name            string     `gorm:"not null;index" json:"name"`
	IsBranch        bool       `gorm:"default:false" json:"is_branch"`
	ParentCompanyID *uuid.UUID `gorm:"type:uuid;index" json:"parent_company_id"`
	ParentCompany   *Company   `gorm:"foreignKey:ParentCompanyID" json:"-"`

	// Contact information
	Area        *string `json:"area"`
	City        *string `json:"city"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`

	Active *bool `gorm:"default:true" json:"active"`

	// Metadata
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
