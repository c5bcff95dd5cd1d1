package repository

import (
	"context"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// CommissionRepository defines the interface for commission data access
type CommissionRepository interface {
	Create(ctx context.Context, commission *models.Commission) error
	FindByID(ctx context.Context, id uint) (*models.Commission, error)
	Update(ctx context.Context, commission *models.Commission) error
	List(ctx context.Context, query *ListQuery) ([]models.Commission, int64, error)
	FindAll(ctx context.Context) ([]models.Commission, error)
}

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *models.Commission) error {
	return r.db.WithContext(ctx).Create(commission).Error
}

func (r *commissionRepository) FindByID(ctx context.Context, id uint) (*models.Commission, error) {
	var commission models.Commission
	err := r.db.WithContext(ctx).
		Preload("Broker").
		First(&commission, id).Error
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

func (r *commissionRepository) Update(ctx context.Context, commission *models.Commission) error {
	return r.db.WithContext(ctx).Save(commission).Error
}

func (r *commissionRepository) List(ctx context.Context, query *ListQuery) ([]models.Commission, int64, error) {
	var commissions []models.Commission
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Commission{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN brokers ON brokers.id = commissions.broker_id").
			Where("commissions.sale_description ILIKE ? OR brokers.name ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("commissions.status = ?", query.Filters["status"])
	}

	if query.Filters["broker_id"] != "" {
		db = db.Where("commissions.broker_id = ?", query.Filters["broker_id"])
	}

	db.Count(&total)

	db = db.Preload("Broker").
		Order("commissions.created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&commissions).Error
	return commissions, total, err
}

func (r *commissionRepository) FindAll(ctx context.Context) ([]models.Commission, error) {
	var commissions []models.Commission
	err := r.db.WithContext(ctx).
		Preload("Broker").
		Order("created_at ASC").
		Find(&commissions).Error
	return commissions, err
}
