package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate narrows or orders a query. Predicates are applied in order.
type Predicate func(*gorm.DB) *gorm.DB

// Where filters rows with a gorm condition, e.g. Where("board_id = ?", id).
func Where(query interface{}, args ...interface{}) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// OrderBy sorts the result, e.g. OrderBy("position").
func OrderBy(order string) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// Repository is the CRUD primitive shared by every entity repository.
type Repository[T any] struct {
	db    *gorm.DB
	state *txState
}

// txState is shared by the repositories of one unit of work.
type txState struct {
	closed bool
}

func NewRepository[T any](db *gorm.DB) Repository[T] {
	return Repository[T]{db: db}
}

// conn returns the session for ctx. Once the owning unit of work is closed the
// session carries ErrUnitOfWorkClosed and gorm executes nothing.
func (r Repository[T]) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.state != nil && r.state.closed {
		_ = db.AddError(ErrUnitOfWorkClosed)
	}
	return db
}

func (r Repository[T]) query(ctx context.Context, where []Predicate) *gorm.DB {
	q := r.conn(ctx).Model(new(T))
	for _, p := range where {
		q = p(q)
	}
	return q
}

// Get returns the first entity matching all predicates, or nil when nothing matches.
func (r Repository[T]) Get(ctx context.Context, where ...Predicate) (*T, error) {
	var entity T
	if err := r.query(ctx, where).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// List returns every entity matching all predicates. The result is never nil.
func (r Repository[T]) List(ctx context.Context, where ...Predicate) ([]T, error) {
	entities := make([]T, 0)
	if err := r.query(ctx, where).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r Repository[T]) Exists(ctx context.Context, where ...Predicate) (bool, error) {
	var count int64
	if err := r.query(ctx, where).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.conn(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r Repository[T]) Update(ctx context.Context, entity *T) error {
	return r.conn(ctx).Omit(clause.Associations).Save(entity).Error
}

func (r Repository[T]) Delete(ctx context.Context, entity *T) error {
	return r.conn(ctx).Delete(entity).Error
}

// DeleteWhere removes every row matching the predicates. At least one
// predicate is required; gorm refuses unconditioned deletes.
func (r Repository[T]) DeleteWhere(ctx context.Context, where ...Predicate) error {
	q := r.conn(ctx)
	for _, p := range where {
		q = p(q)
	}
	return q.Delete(new(T)).Error
}

// PluckIDs returns the primary keys of every matching row. Only valid for
// entities with a single "id" column.
func (r Repository[T]) PluckIDs(ctx context.Context, where ...Predicate) ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.query(ctx, where).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Distinct collapses duplicate rows produced by joins.
func Distinct() Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Distinct()
	}
}

// Join adds a raw JOIN clause, e.g. Join("JOIN lists ON lists.id = cards.list_id").
func Join(query string, args ...interface{}) Predicate {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins(query, args...)
	}
}
