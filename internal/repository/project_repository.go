package repository

import (
	"context"

	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository extends the archivable interface with queries that
// need the project's linked financial records
type ProjectRepository interface {
	ArchivableRepository[models.Project]
	FindWithTotals(ctx context.Context, id uint) (*models.Project, error)
	ListByStatus(ctx context.Context, status string) ([]models.Project, error)
}

type projectRepository struct {
	ArchivableRepository[models.Project]
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		ArchivableRepository: NewArchivableRepository[models.Project](db),
		db:                   db,
	}
}

// FindWithTotals loads a project with its debts and payables so revenue
// and cost aggregates can be computed
func (r *projectRepository) FindWithTotals(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Debts").
		Preload("Payables").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("active = ? AND status = ?", true, status).
		Order("name ASC").
		Find(&projects).Error
	return projects, err
}
