package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"gorm.io/gorm"
)

// SupplierService handles supplier registry operations
type SupplierService struct {
	supplierRepo repository.ArchivableRepository[models.Supplier]
	auditSvc     *AuditService
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.ArchivableRepository[models.Supplier], auditSvc *AuditService) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		auditSvc:     auditSvc,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", ErrValidation)
	}

	supplier.Active = true
	return s.supplierRepo.Create(ctx, supplier)
}

// Update modifies an existing supplier's registry data
func (s *SupplierService) Update(ctx context.Context, id uint, updated *models.Supplier) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
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

	supplier.Name = updated.Name
	supplier.TaxID = updated.TaxID
	supplier.Phone = updated.Phone
	supplier.Email = updated.Email
	supplier.ContactName = updated.ContactName
	supplier.Notes = updated.Notes

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Get fetches a supplier by ID
func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}

// List returns active or archived suppliers matching the query
func (s *SupplierService) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, query, active)
}

// Archive deactivates a supplier without touching its payables
func (s *SupplierService) Archive(ctx context.Context, id uint, actorID uint) error {
	if err := s.supplierRepo.Archive(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionArchive, "Supplier", id, "", "", "")
	return nil
}

// Reactivate brings an archived supplier back
func (s *SupplierService) Reactivate(ctx context.Context, id uint, actorID uint) error {
	if err := s.supplierRepo.Reactivate(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionReactivate, "Supplier", id, "", "", "")
	return nil
}
