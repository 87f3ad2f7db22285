// Package repository implements the viewset data-access contract on gorm.
package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"collection-app/internal/apierror"
	"collection-app/internal/viewset"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows or augments a query before it runs (preloads, annotations,
// visibility filters).
type Scope = func(*gorm.DB) *gorm.DB

// Gorm is the generic gorm-backed repository behind every view set.
type Gorm[M any] struct {
	db     *gorm.DB
	scopes []Scope
}

func New[M any](db *gorm.DB, scopes ...Scope) *Gorm[M] {
	return &Gorm[M]{db: db, scopes: scopes}
}

// Scoped returns a copy with extra scopes appended; the receiver is not
// mutated, so shared repositories stay request-safe.
func (r *Gorm[M]) Scoped(scopes ...Scope) *Gorm[M] {
	merged := make([]Scope, 0, len(r.scopes)+len(scopes))
	merged = append(merged, r.scopes...)
	merged = append(merged, scopes...)
	return &Gorm[M]{db: r.db, scopes: merged}
}

func (r *Gorm[M]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(M))
	for _, scope := range r.scopes {
		q = scope(q)
	}
	return q
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func (r *Gorm[M]) Get(ctx context.Context, id uuid.UUID) (*M, error) {
	var entity M
	if err := r.query(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// First returns the first row matching cond under the repository scopes.
// Singleton lookups (my snap, my like) go through here.
func (r *Gorm[M]) First(ctx context.Context, cond string, args ...any) (*M, error) {
	var entity M
	if err := r.query(ctx).Where(cond, args...).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Gorm[M]) List(ctx context.Context, q viewset.Query) ([]M, int64, error) {
	tx := r.query(ctx)
	if len(q.Filters) > 0 {
		tx = tx.Where(q.Filters)
	}

	// Count reflects the post-filter, pre-slice cardinality. It runs on a
	// detached session with the annotation select replaced, so correlated
	// subqueries never leak into the count.
	var count int64
	if err := tx.Session(&gorm.Session{}).Select("1").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	for _, field := range q.OrderBy {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		if !identPattern.MatchString(name) {
			return nil, 0, apierror.Malformed(map[string][]string{"order_by": {"invalid field name"}})
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: name}, Desc: desc})
	}

	var entities []M
	if err := tx.Offset(q.Offset).Limit(q.Limit).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, count, nil
}

// Writes never cascade into associations; handlers may attach preloaded
// relations to an entity purely for response encoding.
func (r *Gorm[M]) Create(ctx context.Context, entity *M) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r *Gorm[M]) Save(ctx context.Context, entity *M) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

func (r *Gorm[M]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ------------------------------
// Scopes
// ------------------------------

// Count describes one aggregate annotation over a relation.
type Count struct {
	As    string // output column, e.g. "nb_items"
	Table string // related table
	FK    string // foreign key column on the related table
	Where string // optional extra predicate, e.g. "likes.liked = true"
}

// WithCounts selects parent.* plus a correlated count subquery per
// annotation; pair it with read-only annotation fields on the model.
func WithCounts(parent string, counts ...Count) Scope {
	return func(db *gorm.DB) *gorm.DB {
		sel := parent + ".*"
		for _, c := range counts {
			expr := fmt.Sprintf("(SELECT count(*) FROM %s WHERE %s.%s = %s.id", c.Table, c.Table, c.FK, parent)
			if c.Where != "" {
				expr += " AND " + c.Where
			}
			sel += ", " + expr + ") AS " + c.As
		}
		return db.Select(sel)
	}
}

func Preload(association string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, args...)
	}
}

func Where(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}
