package models

import (
	"time"
)

// Commission represents a broker commission on a sale
type Commission struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BrokerID        uint       `gorm:"not null;index" json:"broker_id"`
	SaleDescription string     `gorm:"not null" json:"sale_description"`
	SaleAmount      float64    `gorm:"type:decimal(15,2);not null" json:"sale_amount"`
	Percentage      float64    `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Amount          float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status          string     `gorm:"default:pending;not null;index" json:"status"`
	PaymentDate     *time.Time `gorm:"type:date" json:"payment_date"`
	ProofPath       *string    `json:"-"`
	ProofURL        *string    `json:"proof_url"`
	Notes           *string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	Broker Broker `gorm:"foreignKey:BrokerID" json:"broker,omitempty"`
}

// TableName specifies the table name for Commission
func (Commission) TableName() string {
	return "commissions"
}

// CommissionAmount computes the commission owed for a sale
func CommissionAmount(saleAmount, percentage float64) float64 {
	return saleAmount * percentage / 100
}

// MayPay returns true if the commission can transition to paid
func (c *Commission) MayPay() bool {
	return c.Status == InstallmentStatusPending || c.Status == InstallmentStatusOverdue
}

// IsPaid returns true if the commission has been paid
func (c *Commission) IsPaid() bool {
	return c.Status == InstallmentStatusPaid
}

// CommissionResponse is the JSON response format for commissions
type CommissionResponse struct {
	ID              uint       `json:"id"`
	BrokerID        uint       `json:"broker_id"`
	BrokerName      string     `json:"broker_name,omitempty"`
	SaleDescription string     `json:"sale_description"`
	SaleAmount      float64    `json:"sale_amount"`
	Percentage      float64    `json:"percentage"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	StatusLabel     string     `json:"status_label"`
	PaymentDate     *time.Time `json:"payment_date"`
	HasProof        bool       `json:"has_proof"`
	ProofURL        *string    `json:"proof_url"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToResponse converts Commission to CommissionResponse
func (c *Commission) ToResponse() CommissionResponse {
	resp := CommissionResponse{
		ID:              c.ID,
		BrokerID:        c.BrokerID,
		SaleDescription: c.SaleDescription,
		SaleAmount:      c.SaleAmount,
		Percentage:      c.Percentage,
		Amount:          c.Amount,
		Status:          c.Status,
		StatusLabel:     StatusLabel(c.Status),
		PaymentDate:     c.PaymentDate,
		HasProof:        c.ProofPath != nil && *c.ProofPath != "",
		ProofURL:        c.ProofURL,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
	}

	if c.Broker.ID != 0 {
		resp.BrokerName = c.Broker.Name
	}

	return resp
}
