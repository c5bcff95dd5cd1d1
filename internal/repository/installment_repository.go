package repository

import (
	"context"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// InstallmentRepository defines the interface for installment data access
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []models.Installment) error
	FindByID(ctx context.Context, id uint) (*models.Installment, error)
	Update(ctx context.Context, installment *models.Installment) error
	List(ctx context.Context, query *ListQuery) ([]models.Installment, int64, error)
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
	FindOverdue(ctx context.Context) ([]models.Installment, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Installment, error)
	CountByDebt(ctx context.Context, debtID uint) (int64, error)
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) CreateBatch(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&installments).Error
}

func (r *installmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	err := r.db.WithContext(ctx).
		Preload("Debt").
		Preload("Debt.Client").
		First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *installmentRepository) Update(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

func (r *installmentRepository) List(ctx context.Context, query *ListQuery) ([]models.Installment, int64, error) {
	var installments []models.Installment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Installment{}).
		Joins("JOIN debts ON debts.id = installments.debt_id")

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN clients ON clients.id = debts.client_id").
			Where("debts.description ILIKE ? OR clients.name ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("installments.status = ?", query.Filters["status"])
	}

	if query.Filters["client_id"] != "" {
		db = db.Where("debts.client_id = ?", query.Filters["client_id"])
	}

	if query.Filters["debt_id"] != "" {
		db = db.Where("installments.debt_id = ?", query.Filters["debt_id"])
	}

	db.Count(&total)

	db = db.Preload("Debt").Preload("Debt.Client").
		Order("installments.due_date ASC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&installments).Error
	return installments, total, err
}

// MarkOverdue flips pending installments past their due date to overdue.
// Paid rows are never touched, so re-running it is safe.
func (r *installmentRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("status = ? AND due_date < ?", models.InstallmentStatusPending, before).
		Update("status", models.InstallmentStatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *installmentRepository) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Preload("Debt").
		Preload("Debt.Client").
		Where("status = ?", models.InstallmentStatusOverdue).
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Preload("Debt").
		Preload("Debt.Client").
		Where("status IN ? AND due_date >= ? AND due_date < ?",
			[]string{models.InstallmentStatusPending, models.InstallmentStatusOverdue}, from, to).
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) CountByDebt(ctx context.Context, debtID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("debt_id = ?", debtID).
		Count(&count).Error
	return count, err
}
