package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// ReportRepository serves the aggregate queries behind the dashboard and
// reports, plus the DB-backed cache that fronts them
type ReportRepository interface {
	GetCache(ctx context.Context, key string) (*models.ReportCache, error)
	SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	InvalidateCache(ctx context.Context, keyPrefix string) error
	CleanExpiredCache(ctx context.Context) error

	OutstandingReceivable(ctx context.Context) (float64, error)
	OverdueReceivable(ctx context.Context) (float64, error)
	ReceivedBetween(ctx context.Context, from, to time.Time) (float64, error)
	OutstandingPayable(ctx context.Context) (float64, error)
	OverduePayable(ctx context.Context) (float64, error)
	PaidBetween(ctx context.Context, from, to time.Time) (float64, error)
	MonthlyCashFlow(ctx context.Context, from, to time.Time) ([]models.CashFlowPoint, error)
	AllReceivables(ctx context.Context) ([]models.Installment, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetCache(ctx context.Context, key string) (*models.ReportCache, error) {
	var cache models.ReportCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, time.Now()).
		First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *reportRepository) SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(ttl)

	var existing models.ReportCache
	err = r.db.WithContext(ctx).Where("cache_key = ?", key).First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"payload":    string(payload),
			"expires_at": expiresAt,
			"updated_at": time.Now(),
		}).Error
	}

	return r.db.WithContext(ctx).Create(&models.ReportCache{
		CacheKey:  key,
		Payload:   string(payload),
		ExpiresAt: expiresAt,
	}).Error
}

func (r *reportRepository) InvalidateCache(ctx context.Context, keyPrefix string) error {
	return r.db.WithContext(ctx).
		Where("cache_key LIKE ?", keyPrefix+"%").
		Delete(&models.ReportCache{}).Error
}

func (r *reportRepository) CleanExpiredCache(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.ReportCache{}).Error
}

func (r *reportRepository) OutstandingReceivable(ctx context.Context) (float64, error) {
	return r.sumInstallments(ctx, []string{models.InstallmentStatusPending, models.InstallmentStatusOverdue})
}

func (r *reportRepository) OverdueReceivable(ctx context.Context) (float64, error) {
	return r.sumInstallments(ctx, []string{models.InstallmentStatusOverdue})
}

func (r *reportRepository) sumInstallments(ctx context.Context, statuses []string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) ReceivedBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			models.InstallmentStatusPaid, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) OutstandingPayable(ctx context.Context) (float64, error) {
	return r.sumPayables(ctx, []string{models.InstallmentStatusPending, models.InstallmentStatusOverdue})
}

func (r *reportRepository) OverduePayable(ctx context.Context) (float64, error) {
	return r.sumPayables(ctx, []string{models.InstallmentStatusOverdue})
}

func (r *reportRepository) sumPayables(ctx context.Context, statuses []string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payable{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) PaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payable{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			models.InstallmentStatusPaid, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// MonthlyCashFlow buckets received installments and paid payables by the
// month of their payment date
func (r *reportRepository) MonthlyCashFlow(ctx context.Context, from, to time.Time) ([]models.CashFlowPoint, error) {
	type row struct {
		Month  string
		Amount float64
	}

	var received []row
	err := r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			models.InstallmentStatusPaid, from, to).
		Select("to_char(payment_date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS amount").
		Group("month").
		Scan(&received).Error
	if err != nil {
		return nil, err
	}

	var paid []row
	err = r.db.WithContext(ctx).Model(&models.Payable{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			models.InstallmentStatusPaid, from, to).
		Select("to_char(payment_date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS amount").
		Group("month").
		Scan(&paid).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*models.CashFlowPoint)
	for _, rec := range received {
		buckets[rec.Month] = &models.CashFlowPoint{Month: rec.Month, Received: rec.Amount}
	}
	for _, p := range paid {
		if b, ok := buckets[p.Month]; ok {
			b.Paid = p.Amount
		} else {
			buckets[p.Month] = &models.CashFlowPoint{Month: p.Month, Paid: p.Amount}
		}
	}

	points := make([]models.CashFlowPoint, 0, len(buckets))
	for cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); cursor.Before(to); cursor = cursor.AddDate(0, 1, 0) {
		month := cursor.Format("2006-01")
		point := models.CashFlowPoint{Month: month}
		if b, ok := buckets[month]; ok {
			point = *b
		}
		point.Net = point.Received - point.Paid
		points = append(points, point)
	}

	return points, nil
}

func (r *reportRepository) AllReceivables(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Preload("Debt").
		Preload("Debt.Client").
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}
