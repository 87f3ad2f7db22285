package viewset

import (
	"context"

	"github.com/google/uuid"
)

// Query narrows, orders and slices a listing. Filters are exact-match
// predicates; unset fields never appear in the map. OrderBy entries follow
// the "name" / "-name" convention (descending with a leading dash).
type Query struct {
	Filters map[string]any
	OrderBy []string
	Limit   int
	Offset  int
}

// Repository is the data-access capability every view consumes. Get, Save
// and Delete report missing rows as a not-found error; Create and Save
// report uniqueness violations as a conflict. List returns the total count
// of matching rows before Limit/Offset slicing.
type Repository[M any] interface {
	Get(ctx context.Context, id uuid.UUID) (*M, error)
	List(ctx context.Context, q Query) ([]M, int64, error)
	Create(ctx context.Context, entity *M) error
	Save(ctx context.Context, entity *M) error
	Delete(ctx context.Context, id uuid.UUID) error
}
