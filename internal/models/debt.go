package models

import (
	"time"
)

// Debt represents a receivable owed by a client, split into installments.
// Debts are immutable after creation; changes happen on the installments.
type Debt struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GUID             string    `gorm:"column:guid;not null;uniqueIndex" json:"guid"`
	ClientID         uint      `gorm:"not null;index" json:"client_id"`
	ProjectID        *uint     `gorm:"index" json:"project_id"`
	Description      string    `gorm:"not null" json:"description"`
	TotalAmount      float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	InstallmentCount int       `gorm:"not null" json:"installment_count"`
	StartDate        time.Time `gorm:"type:date;not null" json:"start_date"`
	Frequency        string    `gorm:"default:monthly;not null" json:"frequency"`
	PaymentMethod    string    `json:"payment_method"`
	Notes            *string   `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Associations
	Client       Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project      *Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Installments []Installment `gorm:"foreignKey:DebtID" json:"installments,omitempty"`
}

// TableName specifies the table name for Debt
func (Debt) TableName() string {
	return "debts"
}

// Installment frequency constants
const (
	FrequencyMonthly  = "monthly"
	FrequencyBiweekly = "biweekly"
	FrequencyWeekly   = "weekly"
)

// ValidFrequency reports whether f is a known installment frequency
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyMonthly, FrequencyBiweekly, FrequencyWeekly:
		return true
	}
	return false
}

// PaidAmount sums the amounts of paid installments (requires the
// Installments association to be loaded)
func (d *Debt) PaidAmount() float64 {
	var total float64
	for _, i := range d.Installments {
		if i.Status == InstallmentStatusPaid {
			total += i.Amount
		}
	}
	return total
}

// OutstandingAmount returns the unpaid portion of the debt
func (d *Debt) OutstandingAmount() float64 {
	return d.TotalAmount - d.PaidAmount()
}

// DebtResponse is the JSON response format for debts
type DebtResponse struct {
	ID               uint                  `json:"id"`
	GUID             string                `json:"guid"`
	ClientID         uint                  `json:"client_id"`
	ClientName       string                `json:"client_name,omitempty"`
	ProjectID        *uint                 `json:"project_id"`
	ProjectName      string                `json:"project_name,omitempty"`
	Description      string                `json:"description"`
	TotalAmount      float64               `json:"total_amount"`
	PaidAmount       float64               `json:"paid_amount"`
	InstallmentCount int                   `json:"installment_count"`
	StartDate        time.Time             `json:"start_date"`
	Frequency        string                `json:"frequency"`
	PaymentMethod    string                `json:"payment_method"`
	Notes            *string               `json:"notes"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// ToResponse converts Debt to DebtResponse
func (d *Debt) ToResponse() DebtResponse {
	resp := DebtResponse{
		ID:               d.ID,
		GUID:             d.GUID,
		ClientID:         d.ClientID,
		ProjectID:        d.ProjectID,
		Description:      d.Description,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount(),
		InstallmentCount: d.InstallmentCount,
		StartDate:        d.StartDate,
		Frequency:        d.Frequency,
		PaymentMethod:    d.PaymentMethod,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
	}

	if d.Client.ID != 0 {
		resp.ClientName = d.Client.Name
	}
	if d.Project != nil && d.Project.ID != 0 {
		resp.ProjectName = d.Project.Name
	}

	for _, i := range d.Installments {
		resp.Installments = append(resp.Installments, i.ToResponse())
	}

	return resp
}
