package repository

import (
	"context"

	"gorm.io/gorm"
)

// ArchivableRepository is the shared data access interface for registry
// entities that support archiving (clients, suppliers, brokers, projects).
// Archiving flips the active flag and nothing else; it never cascades to
// linked financial records.
type ArchivableRepository[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	List(ctx context.Context, query *ListQuery, active bool) ([]T, int64, error)
	Archive(ctx context.Context, id uint) error
	Reactivate(ctx context.Context, id uint) error
}

type archivableRepository[T any] struct {
	db *gorm.DB
}

// NewArchivableRepository creates a repository for an archivable entity
func NewArchivableRepository[T any](db *gorm.DB) ArchivableRepository[T] {
	return &archivableRepository[T]{db: db}
}

func (r *archivableRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *archivableRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *archivableRepository[T]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *archivableRepository[T]) List(ctx context.Context, query *ListQuery, active bool) ([]T, int64, error) {
	var records []T
	var total int64

	db := r.db.WithContext(ctx).Model(new(T)).Where("active = ?", active)

	if query.Search != "" {
		db = db.Where("name ILIKE ?", "%"+query.Search+"%")
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("name ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&records).Error
	return records, total, err
}

func (r *archivableRepository[T]) Archive(ctx context.Context, id uint) error {
	return r.setActive(ctx, id, false)
}

func (r *archivableRepository[T]) Reactivate(ctx context.Context, id uint) error {
	return r.setActive(ctx, id, true)
}

// setActive is idempotent: toggling an already archived or already active
// record succeeds without touching any other column.
func (r *archivableRepository[T]) setActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
