package models

import (
	"time"
)

// Supplier represents a vendor the company buys materials and services from
type Supplier struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	TaxID       string    `gorm:"column:tax_id" json:"tax_id"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	ContactName *string   `json:"contact_name"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	Active      bool      `gorm:"default:true;not null;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Payables []Payable `gorm:"foreignKey:SupplierID" json:"payables,omitempty"`
}

// TableName specifies the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// IsActive reports whether the supplier is active (not archived)
func (s *Supplier) IsActive() bool {
	return s.Active
}

// SupplierResponse is the JSON response format for suppliers
type SupplierResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	ContactName *string   `json:"contact_name"`
	Notes       *string   `json:"notes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts Supplier to SupplierResponse
func (s *Supplier) ToResponse() SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		TaxID:       s.TaxID,
		Phone:       s.Phone,
		Email:       s.Email,
		ContactName: s.ContactName,
		Notes:       s.Notes,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
