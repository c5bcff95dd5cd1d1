package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles construction project (obra) operations
type ProjectService struct {
	projectRepo repository.ProjectRepository
	auditSvc    *AuditService
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository, auditSvc *AuditService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		auditSvc:    auditSvc,
	}
}

// Create registers a new construction project
func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", ErrValidation)
	}

	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}
	if !models.ValidProjectStatus(project.Status) {
		return fmt.Errorf("%w: status desconhecido %q", ErrValidation, project.Status)
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		return fmt.Errorf("%w: data final anterior à data inicial", ErrValidation)
	}

	project.Active = true
	return s.projectRepo.Create(ctx, project)
}

// Update modifies an existing project
func (s *ProjectService) Update(ctx context.Context, id uint, updated *models.Project) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
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
	if updated.Status != "" && !models.ValidProjectStatus(updated.Status) {
		return nil, fmt.Errorf("%w: status desconhecido %q", ErrValidation, updated.Status)
	}

	project.Name = updated.Name
	project.Description = updated.Description
	project.Address = updated.Address
	if updated.Status != "" {
		project.Status = updated.Status
	}
	project.Budget = updated.Budget
	project.StartDate = updated.StartDate
	project.EndDate = updated.EndDate
	project.SiteManager = updated.SiteManager

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get fetches a project with its linked revenue and cost totals
func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.FindWithTotals(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// List returns active or archived projects matching the query
func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery, active bool) ([]models.Project, int64, error) {
	return s.projectRepo.List(ctx, query, active)
}

// ListByStatus returns active projects in the given status
func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	if !models.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: status de obra inválido: %s", ErrValidation, status)
	}
	return s.projectRepo.ListByStatus(ctx, status)
}

// Archive deactivates a project without touching its financial records
func (s *ProjectService) Archive(ctx context.Context, id uint, actorID uint) error {
	if err := s.projectRepo.Archive(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionArchive, "Project", id, "", "", "")
	return nil
}

// Reactivate brings an archived project back
func (s *ProjectService) Reactivate(ctx context.Context, id uint, actorID uint) error {
	if err := s.projectRepo.Reactivate(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, actorID, AuditActionReactivate, "Project", id, "", "", "")
	return nil
}
