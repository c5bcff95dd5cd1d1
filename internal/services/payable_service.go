package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/storage"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
	"gorm.io/gorm"
)

// PayableService handles supplier expenses
type PayableService struct {
	payableRepo  repository.PayableRepository
	supplierRepo repository.ArchivableRepository[models.Supplier]
	projectRepo  repository.ProjectRepository
	reportRepo   repository.ReportRepository
	store        *storage.LocalStorage
	auditSvc     *AuditService
	cfg          *config.Config
}

// NewPayableService creates a new payable service
func NewPayableService(
	payableRepo repository.PayableRepository,
	supplierRepo repository.ArchivableRepository[models.Supplier],
	projectRepo repository.ProjectRepository,
	reportRepo repository.ReportRepository,
	store *storage.LocalStorage,
	auditSvc *AuditService,
	cfg *config.Config,
) *PayableService {
	return &PayableService{
		payableRepo:  payableRepo,
		supplierRepo: supplierRepo,
		projectRepo:  projectRepo,
		reportRepo:   reportRepo,
		store:        store,
		auditSvc:     auditSvc,
		cfg:          cfg,
	}
}

// Create registers a payable with an optional nota fiscal attachment
func (s *PayableService) Create(ctx context.Context, payable *models.Payable, invoice multipart.File, invoiceHeader *multipart.FileHeader, actorID uint) (*models.Payable, error) {
	payable.Description = strings.TrimSpace(payable.Description)
	if payable.Description == "" {
		return nil, fmt.Errorf("%w: descrição é obrigatória", ErrValidation)
	}
	if payable.Amount <= 0 {
		return nil, fmt.Errorf("%w: valor deve ser maior que zero", ErrValidation)
	}
	if !models.ValidPayableCategory(payable.Category) {
		return nil, fmt.Errorf("%w: categoria desconhecida %q", ErrValidation, payable.Category)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, payable.SupplierID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: fornecedor não encontrado", ErrNotFound)
		}
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, fmt.Errorf("%w: fornecedor arquivado", ErrInactiveRecord)
	}

	if payable.ProjectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *payable.ProjectID)
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

	payable.Status = models.InstallmentStatusPending
	if err := s.payableRepo.Create(ctx, payable); err != nil {
		return nil, err
	}

	// The attachment key needs the record ID, so it is stored after the insert
	if invoice != nil && invoiceHeader != nil {
		key, err := s.store.Upload(invoice, storage.BucketInvoices, payable.ID, invoiceHeader.Filename)
		if err != nil {
			return nil, fmt.Errorf("falha ao armazenar nota fiscal: %w", err)
		}
		url := s.store.PublicURL(s.cfg.PublicURL, storage.BucketInvoices, key)
		payable.InvoicePath = &key
		payable.InvoiceURL = &url
		if err := s.payableRepo.Update(ctx, payable); err != nil {
			return nil, err
		}
	}

	s.reportRepo.InvalidateCache(ctx, "payable")
	s.reportRepo.InvalidateCache(ctx, "dashboard")
	s.auditSvc.Log(ctx, actorID, AuditActionCreate, "Payable", payable.ID,
		fmt.Sprintf("valor=%.2f categoria=%s", payable.Amount, payable.Category), "", "")

	return s.Get(ctx, payable.ID)
}

// Get fetches a payable with its supplier and project
func (s *PayableService) Get(ctx context.Context, id uint) (*models.Payable, error) {
	payable, err := s.payableRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payable, nil
}

// List returns payables matching the query
func (s *PayableService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payable, int64, error) {
	return s.payableRepo.List(ctx, query)
}

// RecordPayment marks a payable paid with the payment date and optional proof
func (s *PayableService) RecordPayment(ctx context.Context, id uint, paymentDate time.Time, file multipart.File, header *multipart.FileHeader, actorID uint) (*models.Payable, error) {
	payable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !payable.MayPay() {
		return nil, fmt.Errorf("%w: conta não pode ser paga no estado %s", ErrInvalidState, payable.Status)
	}

	payable.Status = models.InstallmentStatusPaid
	payable.PaymentDate = &paymentDate

	if file != nil && header != nil {
		key, err := s.store.Upload(file, storage.BucketPayableProofs, payable.ID, header.Filename)
		if err != nil {
			return nil, fmt.Errorf("falha ao armazenar comprovante: %w", err)
		}
		url := s.store.PublicURL(s.cfg.PublicURL, storage.BucketPayableProofs, key)
		payable.ProofPath = &key
		payable.ProofURL = &url
	}

	if err := s.payableRepo.Update(ctx, payable); err != nil {
		return nil, err
	}

	s.reportRepo.InvalidateCache(ctx, "payable")
	s.reportRepo.InvalidateCache(ctx, "dashboard")
	s.auditSvc.Log(ctx, actorID, AuditActionPay, "Payable", payable.ID,
		fmt.Sprintf("valor %.2f", payable.Amount), "", "")

	return payable, nil
}

// SweepOverdue mirrors the receivable sweep for the payables ledger
func (s *PayableService) SweepOverdue(ctx context.Context) (int64, error) {
	today := startOfDay(time.Now())

	updated, err := s.payableRepo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.reportRepo.InvalidateCache(ctx, "payable")
		s.reportRepo.InvalidateCache(ctx, "dashboard")
		logger.Info("overdue sweep updated payables", "count", updated)
	}

	return updated, nil
}
