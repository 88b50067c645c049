package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents query filter options for list endpoints.
// Limit/Offset paging matches the public API envelope.
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:    20,
		Offset:   0,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Page represents a paginated result
type Page[T any] struct {
	Items  []T   `json:"items"`
	Count  int64 `json:"count"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPage creates a new paginated result
func NewPage[T any](items []T, count int64, limit, offset int) Page[T] {
	return Page[T]{
		Items:  items,
		Count:  count,
		Limit:  limit,
		Offset: offset,
	}
}
