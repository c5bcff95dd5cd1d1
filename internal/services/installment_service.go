package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/statemachine"
	"github.com/rogeriosouza/construtora-api/internal/storage"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
	"gorm.io/gorm"
)

// InstallmentService handles the installment payment lifecycle
type InstallmentService struct {
	installmentRepo repository.InstallmentRepository
	reportRepo      repository.ReportRepository
	store           *storage.LocalStorage
	auditSvc        *AuditService
	cfg             *config.Config
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(
	installmentRepo repository.InstallmentRepository,
	reportRepo repository.ReportRepository,
	store *storage.LocalStorage,
	auditSvc *AuditService,
	cfg *config.Config,
) *InstallmentService {
	return &InstallmentService{
		installmentRepo: installmentRepo,
		reportRepo:      reportRepo,
		store:           store,
		auditSvc:        auditSvc,
		cfg:             cfg,
	}
}

// Get fetches an installment with its debt and client
func (s *InstallmentService) Get(ctx context.Context, id uint) (*models.Installment, error) {
	installment, err := s.installmentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return installment, nil
}

// List returns installments matching the query
func (s *InstallmentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
	return s.installmentRepo.List(ctx, query)
}

// RecordPayment marks an installment paid, storing the payment date and
// the optional proof of payment. Paying an already paid installment is
// rejected by the state machine.
func (s *InstallmentService) RecordPayment(ctx context.Context, id uint, paymentDate time.Time, file multipart.File, header *multipart.FileHeader, actorID uint) (*models.Installment, error) {
	installment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sm := statemachine.NewInstallmentFSM(installment)
	if err := sm.Pay(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	installment.PaymentDate = &paymentDate

	if file != nil && header != nil {
		if err := s.storeProof(installment, file, header); err != nil {
			return nil, err
		}
	}

	if err := s.installmentRepo.Update(ctx, installment); err != nil {
		return nil, err
	}

	s.reportRepo.InvalidateCache(ctx, "receivable")
	s.reportRepo.InvalidateCache(ctx, "dashboard")
	s.auditSvc.Log(ctx, actorID, AuditActionPay, "Installment", installment.ID,
		fmt.Sprintf("parcela %d, valor %.2f", installment.Number, installment.Amount), "", "")

	return installment, nil
}

// UpdateProof replaces the proof of payment on an already paid installment
func (s *InstallmentService) UpdateProof(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader, actorID uint) (*models.Installment, error) {
	installment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !installment.IsPaid() {
		return nil, fmt.Errorf("%w: apenas parcelas pagas possuem comprovante", ErrInvalidState)
	}
	if file == nil || header == nil {
		return nil, fmt.Errorf("%w: arquivo de comprovante é obrigatório", ErrValidation)
	}

	if err := s.storeProof(installment, file, header); err != nil {
		return nil, err
	}

	if err := s.installmentRepo.Update(ctx, installment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, AuditActionUpdate, "Installment", installment.ID, "comprovante atualizado", "", "")
	return installment, nil
}

// storeProof uploads the file to the proofs bucket, replacing any object
// that shares the installment's key prefix
func (s *InstallmentService) storeProof(installment *models.Installment, file multipart.File, header *multipart.FileHeader) error {
	key, err := s.store.Upload(file, storage.BucketProofs, installment.ID, header.Filename)
	if err != nil {
		return fmt.Errorf("falha ao armazenar comprovante: %w", err)
	}

	url := s.store.PublicURL(s.cfg.PublicURL, storage.BucketProofs, key)
	installment.ProofPath = &key
	installment.ProofURL = &url
	return nil
}

// SweepOverdue flips every pending installment past its due date to
// overdue. Safe to run repeatedly; paid rows are never touched.
func (s *InstallmentService) SweepOverdue(ctx context.Context) (int64, error) {
	today := startOfDay(time.Now())

	updated, err := s.installmentRepo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.reportRepo.InvalidateCache(ctx, "receivable")
		s.reportRepo.InvalidateCache(ctx, "dashboard")
		logger.Info("overdue sweep updated installments", "count", updated)
	}

	return updated, nil
}

// FindOverdue lists every overdue installment, oldest due date first
func (s *InstallmentService) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	return s.installmentRepo.FindOverdue(ctx)
}

// startOfDay truncates a time to midnight UTC
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
