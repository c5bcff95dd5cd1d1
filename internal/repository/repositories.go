package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Client       ArchivableRepository[models.Client]
	Supplier     ArchivableRepository[models.Supplier]
	Broker       ArchivableRepository[models.Broker]
	Project      ProjectRepository
	Debt         DebtRepository
	Installment  InstallmentRepository
	Payable      PayableRepository
	Commission   CommissionRepository
	Report       ReportRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Client:       NewArchivableRepository[models.Client](db),
		Supplier:     NewArchivableRepository[models.Supplier](db),
		Broker:       NewArchivableRepository[models.Broker](db),
		Project:      NewProjectRepository(db),
		Debt:         NewDebtRepository(db),
		Installment:  NewInstallmentRepository(db),
		Payable:      NewPayableRepository(db),
		Commission:   NewCommissionRepository(db),
		Report:       NewReportRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}
