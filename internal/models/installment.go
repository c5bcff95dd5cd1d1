package models

import (
	"strings"
	"time"
)

// Installment represents one slice of a debt with its own due date and
// payment lifecycle (pending -> paid, pending -> overdue, overdue -> paid)
type Installment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DebtID      uint       `gorm:"not null;index" json:"debt_id"`
	Number      int        `gorm:"not null" json:"number"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate     time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	Status      string     `gorm:"default:pending;not null;index" json:"status"`
	PaymentDate *time.Time `gorm:"type:date" json:"payment_date"`
	ProofPath   *string    `json:"-"` // object key of the payment proof
	ProofURL    *string    `json:"proof_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Debt Debt `gorm:"foreignKey:DebtID" json:"debt,omitempty"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants. Shared by payables and commissions,
// which follow the same lifecycle.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
	InstallmentStatusOverdue = "overdue"
)

// StatusLabel returns the user-facing Portuguese label for a
// pending/paid/overdue status
func StatusLabel(status string) string {
	switch status {
	case InstallmentStatusPending:
		return "Pendente"
	case InstallmentStatusPaid:
		return "Pago"
	case InstallmentStatusOverdue:
		return "Atrasado"
	}
	return status
}

// MayPay returns true if the installment can transition to paid
func (i *Installment) MayPay() bool {
	return i.Status == InstallmentStatusPending || i.Status == InstallmentStatusOverdue
}

// MayMarkOverdue returns true if the sweep can mark the installment overdue
func (i *Installment) MayMarkOverdue() bool {
	return i.Status == InstallmentStatusPending
}

// IsPaid returns true if the installment has been paid. Paid is terminal.
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// IsOverdue returns true if the installment is unpaid and past its due date
func (i *Installment) IsOverdue() bool {
	if i.Status == InstallmentStatusOverdue {
		return true
	}
	return i.Status == InstallmentStatusPending && time.Now().After(i.DueDate)
}

// OverdueDays returns the number of days past the due date
func (i *Installment) OverdueDays() int {
	if !i.IsOverdue() {
		return 0
	}
	return int(time.Since(i.DueDate).Hours() / 24)
}

// InstallmentResponse is the JSON response format for installments
type InstallmentResponse struct {
	ID          uint       `json:"id"`
	DebtID      uint       `json:"debt_id"`
	Number      int        `json:"number"`
	Amount      float64    `json:"amount"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	PaymentDate *time.Time `json:"payment_date"`
	OverdueDays int        `json:"overdue_days"`
	HasProof    bool       `json:"has_proof"`
	IsPDF       bool       `json:"is_pdf"`
	ProofURL    *string    `json:"proof_url"`

	// Debt details
	Description string `json:"description,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	resp := InstallmentResponse{
		ID:          i.ID,
		DebtID:      i.DebtID,
		Number:      i.Number,
		Amount:      i.Amount,
		DueDate:     i.DueDate,
		Status:      i.Status,
		StatusLabel: StatusLabel(i.Status),
		PaymentDate: i.PaymentDate,
		OverdueDays: i.OverdueDays(),
		HasProof:    i.ProofPath != nil && *i.ProofPath != "",
		IsPDF:       i.ProofPath != nil && strings.HasSuffix(strings.ToLower(*i.ProofPath), ".pdf"),
		ProofURL:    i.ProofURL,
	}

	if i.Debt.ID != 0 {
		resp.Description = i.Debt.Description
		if i.Debt.Client.ID != 0 {
			resp.ClientName = i.Debt.Client.Name
		}
	}

	return resp
}
