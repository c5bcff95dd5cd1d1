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
	"gorm.io/gorm"
)

// CommissionService handles broker commissions
type CommissionService struct {
	commissionRepo repository.CommissionRepository
	brokerRepo     repository.ArchivableRepository[models.Broker]
	reportRepo     repository.ReportRepository
	store          *storage.LocalStorage
	auditSvc       *AuditService
	cfg            *config.Config
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	commissionRepo repository.CommissionRepository,
	brokerRepo repository.ArchivableRepository[models.Broker],
	reportRepo repository.ReportRepository,
	store *storage.LocalStorage,
	auditSvc *AuditService,
	cfg *config.Config,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		brokerRepo:     brokerRepo,
		reportRepo:     reportRepo,
		store:          store,
		auditSvc:       auditSvc,
		cfg:            cfg,
	}
}

// Create registers a commission, deriving its amount from the sale
// amount and percentage
func (s *CommissionService) Create(ctx context.Context, commission *models.Commission, actorID uint) (*models.Commission, error) {
	commission.SaleDescription = strings.TrimSpace(commission.SaleDescription)
	if commission.SaleDescription == "" {
		return nil, fmt.Errorf("%w: descrição da venda é obrigatória", ErrValidation)
	}
	if commission.SaleAmount <= 0 {
		return nil, fmt.Errorf("%w: valor da venda deve ser maior que zero", ErrValidation)
	}
	if commission.Percentage <= 0 || commission.Percentage > 100 {
		return nil, fmt.Errorf("%w: percentual deve estar entre 0 e 100", ErrValidation)
	}

	broker, err := s.brokerRepo.FindByID(ctx, commission.BrokerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: corretor não encontrado", ErrNotFound)
		}
		return nil, err
	}
	if !broker.IsActive() {
		return nil, fmt.Errorf("%w: corretor arquivado", ErrInactiveRecord)
	}

	commission.Amount = models.CommissionAmount(commission.SaleAmount, commission.Percentage)
	commission.Status = models.InstallmentStatusPending

	if err := s.commissionRepo.Create(ctx, commission); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, AuditActionCreate, "Commission", commission.ID,
		fmt.Sprintf("venda=%.2f pct=%.2f valor=%.2f", commission.SaleAmount, commission.Percentage, commission.Amount), "", "")

	return s.Get(ctx, commission.ID)
}

// Get fetches a commission with its broker
func (s *CommissionService) Get(ctx context.Context, id uint) (*models.Commission, error) {
	commission, err := s.commissionRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return commission, nil
}

// List returns commissions matching the query
func (s *CommissionService) List(ctx context.Context, query *repository.ListQuery) ([]models.Commission, int64, error) {
	return s.commissionRepo.List(ctx, query)
}

// RecordPayment marks a commission paid with the payment date and
// optional proof of payment
func (s *CommissionService) RecordPayment(ctx context.Context, id uint, paymentDate time.Time, file multipart.File, header *multipart.FileHeader, actorID uint) (*models.Commission, error) {
	commission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !commission.MayPay() {
		return nil, fmt.Errorf("%w: comissão não pode ser paga no estado %s", ErrInvalidState, commission.Status)
	}

	commission.Status = models.InstallmentStatusPaid
	commission.PaymentDate = &paymentDate

	if file != nil && header != nil {
		key, err := s.store.Upload(file, storage.BucketCommissionProofs, commission.ID, header.Filename)
		if err != nil {
			return nil, fmt.Errorf("falha ao armazenar comprovante: %w", err)
		}
		url := s.store.PublicURL(s.cfg.PublicURL, storage.BucketCommissionProofs, key)
		commission.ProofPath = &key
		commission.ProofURL = &url
	}

	if err := s.commissionRepo.Update(ctx, commission); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, AuditActionPay, "Commission", commission.ID,
		fmt.Sprintf("valor %.2f", commission.Amount), "", "")

	return commission, nil
}
