package models

import (
	"time"
)

// Client represents a customer of the construction company
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	TaxID     string    `gorm:"column:tax_id" json:"tax_id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   *string   `json:"address"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	Active    bool      `gorm:"default:true;not null;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Debts []Debt `gorm:"foreignKey:ClientID" json:"debts,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// IsActive reports whether the client is active (not archived)
func (c *Client) IsActive() bool {
	return c.Active
}

// ClientResponse is the JSON response format for clients
type ClientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   *string   `json:"address"`
	Notes     *string   `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts Client to ClientResponse
func (c *Client) ToResponse() ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
