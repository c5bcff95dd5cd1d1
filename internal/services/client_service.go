package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"gorm.io/gorm"
)

// ClientService handles client registry operations
type ClientService struct {
	clientRepo repository.ArchivableRepository[models.Client]
	auditSvc   *AuditService
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ArchivableRepository[models.Client], auditSvc *AuditService) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		auditSvc:   auditSvc,
	}
}

// Create registers a new client. Name is the only required field.
func (s *ClientService) Create(ctx context.Context, client *models.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", ErrValidation)
	}

	client.Active = true
	return s.clientRepo.Create(ctx, client)
}

// Update modifies an existing client's registry data
func (s *ClientService) Update(ctx context.Context, id uint, updated *models.Client) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
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

	client.Name = updated.Name
	client.TaxID = updated.TaxID
	client.Phone = updated.Phone
	client.Email = updated.Email
	client.Address = updated.Address
	client.Notes = updated.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Get fetches a client by ID
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// List returns active or archived clients matching the query
func (s *ClientService) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Client, int64, error) {
	return s.clientRepo.List(ctx, query, active)
}

// Archive deactivates a client without touching their debts
func (s *ClientService) Archive(ctx context.Context, id uint, actorID uint) error {
	if err := s.clientRepo.Archive(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionArchive, "Client", id, "", "", "")
	return nil
}

// Reactivate brings an archived client back
func (s *ClientService) Reactivate(ctx context.Context, id uint, actorID uint) error {
	if err := s.clientRepo.Reactivate(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionReactivate, "Client", id, "", "", "")
	return nil
}
