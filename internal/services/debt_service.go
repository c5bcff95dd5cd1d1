package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
	"gorm.io/gorm"
)

// DebtService handles receivable debts and their generated installments
type DebtService struct {
	debtRepo        repository.DebtRepository
	installmentRepo repository.InstallmentRepository
	clientRepo      repository.ArchivableRepository[models.Client]
	projectRepo     repository.ProjectRepository
	scheduleSvc     *ScheduleService
	reportRepo      repository.ReportRepository
	auditSvc        *AuditService
}

// NewDebtService creates a new debt service
func NewDebtService(
	debtRepo repository.DebtRepository,
	installmentRepo repository.InstallmentRepository,
	clientRepo repository.ArchivableRepository[models.Client],
	projectRepo repository.ProjectRepository,
	scheduleSvc *ScheduleService,
	reportRepo repository.ReportRepository,
	auditSvc *AuditService,
) *DebtService {
	return &DebtService{
		debtRepo:        debtRepo,
		installmentRepo: installmentRepo,
		clientRepo:      clientRepo,
		projectRepo:     projectRepo,
		scheduleSvc:     scheduleSvc,
		reportRepo:      reportRepo,
		auditSvc:        auditSvc,
	}
}

// Create registers a debt and generates its installment schedule. The
// debt insert and the installment batch are two separate writes: if the
// second fails the debt exists with zero installments and the error is
// surfaced so the record can be fixed or removed.
func (s *DebtService) Create(ctx context.Context, debt *models.Debt, actorID uint) (*models.Debt, error) {
	debt.Description = strings.TrimSpace(debt.Description)
	if debt.Description == "" {
		return nil, fmt.Errorf("%w: descrição é obrigatória", ErrValidation)
	}

	client, err := s.clientRepo.FindByID(ctx, debt.ClientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: cliente não encontrado", ErrNotFound)
		}
		return nil, err
	}
	if !client.IsActive() {
		return nil, fmt.Errorf("%w: cliente arquivado", ErrInactiveRecord)
	}

	if debt.ProjectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *debt.ProjectID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("%w: obra não encontrada", ErrNotFound)
			}
			return nil, err
		}
		if !project.IsActive() {
			return nil, fmt.Errorf("%w: obra arquivada", ErrInactiveRecord)
		}
	}

	if debt.Frequency == "" {
		debt.Frequency = models.FrequencyMonthly
	}

	// Validate the schedule before inserting anything
	if _, err := s.scheduleSvc.GenerateSchedule(debt); err != nil {
		return nil, err
	}

	debt.GUID = uuid.New().String()
	if err := s.debtRepo.Create(ctx, debt); err != nil {
		return nil, err
	}

	installments, err := s.scheduleSvc.GenerateSchedule(debt)
	if err != nil {
		return nil, err
	}

	if err := s.installmentRepo.CreateBatch(ctx, installments); err != nil {
		logger.Error("failed to create installments for debt", "debt_id", debt.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleMismatch, err)
	}

	s.reportRepo.InvalidateCache(ctx, "receivable")
	s.auditSvc.Log(ctx, actorID, AuditActionCreate, "Debt", debt.ID,
		fmt.Sprintf("total=%.2f parcelas=%d", debt.TotalAmount, debt.InstallmentCount), "", "")

	return s.debtRepo.FindByID(ctx, debt.ID)
}

// Get fetches a debt with client, project and ordered installments
func (s *DebtService) Get(ctx context.Context, id uint) (*models.Debt, error) {
	debt, err := s.debtRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return debt, nil
}

// List returns debts matching the query
func (s *DebtService) List(ctx context.Context, query *repository.ListQuery) ([]models.Debt, int64, error) {
	return s.debtRepo.List(ctx, query)
}

// CheckConsistency reports whether a debt has the expected number of
// installments. A mismatch means installment generation failed after
// the debt insert.
func (s *DebtService) CheckConsistency(ctx context.Context, id uint) (bool, error) {
	debt, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	count, err := s.installmentRepo.CountByDebt(ctx, id)
	if err != nil {
		return false, err
	}

	return int(count) == debt.InstallmentCount, nil
}
