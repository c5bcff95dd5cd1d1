package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"gorm.io/gorm"
)

// BrokerService handles broker registry operations
type BrokerService struct {
	brokerRepo repository.ArchivableRepository[models.Broker]
	auditSvc   *AuditService
}

// NewBrokerService creates a new broker service
func NewBrokerService(brokerRepo repository.ArchivableRepository[models.Broker], auditSvc *AuditService) *BrokerService {
	return &BrokerService{
		brokerRepo: brokerRepo,
		auditSvc:   auditSvc,
	}
}

// Create registers a new broker
func (s *BrokerService) Create(ctx context.Context, broker *models.Broker) error {
	broker.Name = strings.TrimSpace(broker.Name)
	if broker.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", ErrValidation)
	}

	broker.Active = true
	return s.brokerRepo.Create(ctx, broker)
}

// Update modifies an existing broker's registry data
func (s *BrokerService) Update(ctx context.Context, id uint, updated *models.Broker) (*models.Broker, error) {
	broker, err := s.brokerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return nil, fmt.Errorf("%w: nome é obrigatório", ErrValidation)
	}

	broker.Name = updated.Name
	broker.TaxID = updated.TaxID
	broker.Phone = updated.Phone
	broker.Email = updated.Email
	broker.CRECI = updated.CRECI
	broker.Notes = updated.Notes

	if err := s.brokerRepo.Update(ctx, broker); err != nil {
		return nil, err
	}
	return broker, nil
}

// Get fetches a broker by ID
func (s *BrokerService) Get(ctx context.Context, id uint) (*models.Broker, error) {
	broker, err := s.brokerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return broker, nil
}

// List returns active or archived brokers matching the query
func (s *BrokerService) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Broker, int64, error) {
	return s.brokerRepo.List(ctx, query, active)
}

// Archive deactivates a broker without touching their commissions
func (s *BrokerService) Archive(ctx context.Context, id uint, actorID uint) error {
	if err := s.brokerRepo.Archive(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionArchive, "Broker", id, "", "", "")
	return nil
}

// Reactivate brings an archived broker back
func (s *BrokerService) Reactivate(ctx context.Context, id uint, actorID uint) error {
	if err := s.brokerRepo.Reactivate(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionReactivate, "Broker", id, "", "", "")
	return nil
}
