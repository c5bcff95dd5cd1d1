package models

import (
	"time"
)

// Broker represents a sales broker entitled to commissions
type Broker struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	TaxID      string    `gorm:"column:tax_id" json:"tax_id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	CRECI      *string   `gorm:"column:creci" json:"creci"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	Active     bool      `gorm:"default:true;not null;index" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Commissions []Commission `gorm:"foreignKey:BrokerID" json:"commissions,omitempty"`
}

// TableName specifies the table name for Broker
func (Broker) TableName() string {
	return "brokers"
}

// IsActive reports whether the broker is active (not archived)
func (b *Broker) IsActive() bool {
	return b.Active
}

// BrokerResponse is the JSON response format for brokers
type BrokerResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CRECI     *string   `json:"creci"`
	Notes     *string   `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Broker to BrokerResponse
func (b *Broker) ToResponse() BrokerResponse {
	return BrokerResponse{
		ID:        b.ID,
		Name:      b.Name,
		TaxID:     b.TaxID,
		Phone:     b.Phone,
		Email:     b.Email,
		CRECI:     b.CRECI,
		Notes:     b.Notes,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
