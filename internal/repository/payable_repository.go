package repository

import (
	"context"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// PayableRepository defines the interface for payable data access
type PayableRepository interface {
	Create(ctx context.Context, payable *models.Payable) error
	FindByID(ctx context.Context, id uint) (*models.Payable, error)
	Update(ctx context.Context, payable *models.Payable) error
	List(ctx context.Context, query *ListQuery) ([]models.Payable, int64, error)
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Payable, error)
}

type payableRepository struct {
	db *gorm.DB
}

// NewPayableRepository creates a new payable repository
func NewPayableRepository(db *gorm.DB) PayableRepository {
	return &payableRepository{db: db}
}

func (r *payableRepository) Create(ctx context.Context, payable *models.Payable) error {
	return r.db.WithContext(ctx).Create(payable).Error
}

func (r *payableRepository) FindByID(ctx context.Context, id uint) (*models.Payable, error) {
	var payable models.Payable
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Project").
		First(&payable, id).Error
	if err != nil {
		return nil, err
	}
	return &payable, nil
}

func (r *payableRepository) Update(ctx context.Context, payable *models.Payable) error {
	return r.db.WithContext(ctx).Save(payable).Error
}

func (r *payableRepository) List(ctx context.Context, query *ListQuery) ([]models.Payable, int64, error) {
	var payables []models.Payable
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payable{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN suppliers ON suppliers.id = payables.supplier_id").
			Where("payables.description ILIKE ? OR suppliers.name ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("payables.status = ?", query.Filters["status"])
	}

	if query.Filters["supplier_id"] != "" {
		db = db.Where("payables.supplier_id = ?", query.Filters["supplier_id"])
	}

	if query.Filters["project_id"] != "" {
		db = db.Where("payables.project_id = ?", query.Filters["project_id"])
	}

	if query.Filters["category"] != "" {
		db = db.Where("payables.category = ?", query.Filters["category"])
	}

	db.Count(&total)

	db = db.Preload("Supplier").Preload("Project").
		Order("payables.due_date ASC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&payables).Error
	return payables, total, err
}

// MarkOverdue mirrors the installment sweep for the payables ledger
func (r *payableRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Payable{}).
		Where("status = ? AND due_date < ?", models.InstallmentStatusPending, before).
		Update("status", models.InstallmentStatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *payableRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Payable, error) {
	var payables []models.Payable
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("status IN ? AND due_date >= ? AND due_date < ?",
			[]string{models.InstallmentStatusPending, models.InstallmentStatusOverdue}, from, to).
		Order("due_date ASC").
		Find(&payables).Error
	return payables, err
}
