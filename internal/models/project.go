package models

import (
	"time"
)

// Project represents a construction project (obra)
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null;index" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Address     string     `json:"address"`
	Status      string     `gorm:"default:planning;not null;index" json:"status"`
	Budget      *float64   `gorm:"type:decimal(15,2)" json:"budget"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	SiteManager *string    `json:"site_manager"`
	Active      bool       `gorm:"default:true;not null;index" json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Debts    []Debt    `gorm:"foreignKey:ProjectID" json:"debts,omitempty"`
	Payables []Payable `gorm:"foreignKey:ProjectID" json:"payables,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Project status constants
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusPaused     = "paused"
	ProjectStatusFinished   = "finished"
)

// ValidProjectStatus reports whether s is a known project status
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusPaused, ProjectStatusFinished:
		return true
	}
	return false
}

// IsActive reports whether the project is active (not archived)
func (p *Project) IsActive() bool {
	return p.Active
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Address      string     `json:"address"`
	Status       string     `json:"status"`
	Budget       *float64   `json:"budget"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	SiteManager  *string    `json:"site_manager"`
	Active       bool       `json:"active"`
	TotalRevenue float64    `json:"total_revenue"`
	TotalCost    float64    `json:"total_cost"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToResponse converts Project to ProjectResponse, aggregating linked
// debt and payable totals when the associations are loaded
func (p *Project) ToResponse() ProjectResponse {
	var revenue, cost float64
	for _, d := range p.Debts {
		revenue += d.TotalAmount
	}
	for _, pa := range p.Payables {
		cost += pa.Amount
	}

	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Address:      p.Address,
		Status:       p.Status,
		Budget:       p.Budget,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		SiteManager:  p.SiteManager,
		Active:       p.Active,
		TotalRevenue: revenue,
		TotalCost:    cost,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
