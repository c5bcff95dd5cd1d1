package models

import (
	"time"
)

// Payable represents an expense owed to a supplier
type Payable struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SupplierID  uint       `gorm:"not null;index" json:"supplier_id"`
	ProjectID   *uint      `gorm:"index" json:"project_id"`
	Description string     `gorm:"not null" json:"description"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate     time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	Status      string     `gorm:"default:pending;not null;index" json:"status"`
	Category    string     `gorm:"not null;index" json:"category"`
	PaymentDate *time.Time `gorm:"type:date" json:"payment_date"`
	InvoicePath *string    `json:"-"` // object key of the nota fiscal
	InvoiceURL  *string    `json:"invoice_url"`
	ProofPath   *string    `json:"-"`
	ProofURL    *string    `json:"proof_url"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// TableName specifies the table name for Payable
func (Payable) TableName() string {
	return "payables"
}

// Payable expense categories
const (
	CategoryMaterial  = "Material"
	CategoryLabor     = "Mão de Obra"
	CategoryTaxes     = "Impostos"
	CategoryMachinery = "Maquinário"
	CategoryMarketing = "Marketing"
	CategoryOther     = "Outros"
)

// PayableCategories lists the accepted expense categories
var PayableCategories = []string{
	CategoryMaterial,
	CategoryLabor,
	CategoryTaxes,
	CategoryMachinery,
	CategoryMarketing,
	CategoryOther,
}

// ValidPayableCategory reports whether c is a known expense category
func ValidPayableCategory(c string) bool {
	for _, cat := range PayableCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// MayPay returns true if the payable can transition to paid
func (p *Payable) MayPay() bool {
	return p.Status == InstallmentStatusPending || p.Status == InstallmentStatusOverdue
}

// MayMarkOverdue returns true if the sweep can mark the payable overdue
func (p *Payable) MayMarkOverdue() bool {
	return p.Status == InstallmentStatusPending
}

// IsPaid returns true if the payable has been paid
func (p *Payable) IsPaid() bool {
	return p.Status == InstallmentStatusPaid
}

// OverdueDays returns the number of days past the due date
func (p *Payable) OverdueDays() int {
	if p.Status == InstallmentStatusPaid || time.Now().Before(p.DueDate) {
		return 0
	}
	return int(time.Since(p.DueDate).Hours() / 24)
}

// PayableResponse is the JSON response format for payables
type PayableResponse struct {
	ID           uint       `json:"id"`
	SupplierID   uint       `json:"supplier_id"`
	SupplierName string     `json:"supplier_name,omitempty"`
	ProjectID    *uint      `json:"project_id"`
	ProjectName  string     `json:"project_name,omitempty"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	StatusLabel  string     `json:"status_label"`
	Category     string     `json:"category"`
	PaymentDate  *time.Time `json:"payment_date"`
	OverdueDays  int        `json:"overdue_days"`
	HasInvoice   bool       `json:"has_invoice"`
	InvoiceURL   *string    `json:"invoice_url"`
	HasProof     bool       `json:"has_proof"`
	ProofURL     *string    `json:"proof_url"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToResponse converts Payable to PayableResponse
func (p *Payable) ToResponse() PayableResponse {
	resp := PayableResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		ProjectID:   p.ProjectID,
		Description: p.Description,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Status:      p.Status,
		StatusLabel: StatusLabel(p.Status),
		Category:    p.Category,
		PaymentDate: p.PaymentDate,
		OverdueDays: p.OverdueDays(),
		HasInvoice:  p.InvoicePath != nil && *p.InvoicePath != "",
		InvoiceURL:  p.InvoiceURL,
		HasProof:    p.ProofPath != nil && *p.ProofPath != "",
		ProofURL:    p.ProofURL,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}

	if p.Supplier.ID != 0 {
		resp.SupplierName = p.Supplier.Name
	}
	if p.Project != nil && p.Project.ID != 0 {
		resp.ProjectName = p.Project.Name
	}

	return resp
}
