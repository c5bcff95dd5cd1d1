package models

import (
	"time"
)

// DashboardSummary aggregates both ledgers for the home dashboard
type DashboardSummary struct {
	TotalReceivable   float64        `json:"total_receivable"`
	OverdueReceivable float64        `json:"overdue_receivable"`
	ReceivedThisMonth float64        `json:"received_this_month"`
	TotalPayable      float64        `json:"total_payable"`
	OverduePayable    float64        `json:"overdue_payable"`
	PaidThisMonth     float64        `json:"paid_this_month"`
	UpcomingItems     []UpcomingItem `json:"upcoming_items"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// UpcomingItem is a due entry from either ledger inside the lookahead window
type UpcomingItem struct {
	Kind        string    `json:"kind"` // receivable or payable
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Counterpart string    `json:"counterpart"` // client or supplier name
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
}

// CashFlowPoint is one monthly bucket of the cash flow report
type CashFlowPoint struct {
	Month    string  `json:"month"` // YYYY-MM
	Received float64 `json:"received"`
	Paid     float64 `json:"paid"`
	Net      float64 `json:"net"`
}

// ClientStatement is the per-client receivables extract
type ClientStatement struct {
	ClientID    uint            `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TotalDebts  float64         `json:"total_debts"`
	TotalPaid   float64         `json:"total_paid"`
	Outstanding float64         `json:"outstanding"`
	Lines       []StatementLine `json:"lines"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// StatementLine is one installment row of a client statement
type StatementLine struct {
	DebtDescription string     `json:"debt_description"`
	Number          int        `json:"number"`
	Amount          float64    `json:"amount"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	StatusLabel     string     `json:"status_label"`
	PaymentDate     *time.Time `json:"payment_date"`
}
