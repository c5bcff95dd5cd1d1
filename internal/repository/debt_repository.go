package repository

import (
	"context"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// DebtRepository defines the interface for debt data access
type DebtRepository interface {
	Create(ctx context.Context, debt *models.Debt) error
	FindByID(ctx context.Context, id uint) (*models.Debt, error)
	List(ctx context.Context, query *ListQuery) ([]models.Debt, int64, error)
	ListByClient(ctx context.Context, clientID uint) ([]models.Debt, error)
	Delete(ctx context.Context, id uint) error
}

type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository
func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) Create(ctx context.Context, debt *models.Debt) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

func (r *debtRepository) FindByID(ctx context.Context, id uint) (*models.Debt, error) {
	var debt models.Debt
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installments.number ASC")
		}).
		First(&debt, id).Error
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) List(ctx context.Context, query *ListQuery) ([]models.Debt, int64, error) {
	var debts []models.Debt
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Debt{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN clients ON clients.id = debts.client_id").
			Where("debts.description ILIKE ? OR clients.name ILIKE ?", search, search)
	}

	if query.Filters["client_id"] != "" {
		db = db.Where("debts.client_id = ?", query.Filters["client_id"])
	}

	if query.Filters["project_id"] != "" {
		db = db.Where("debts.project_id = ?", query.Filters["project_id"])
	}

	db.Count(&total)

	db = db.Preload("Client").Preload("Project").Preload("Installments").
		Order("debts.created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&debts).Error
	return debts, total, err
}

func (r *debtRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installments.due_date ASC")
		}).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Debt{}, id).Error
}
