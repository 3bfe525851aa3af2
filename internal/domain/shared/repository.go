package shared

import (
	"context"

	"github.com/google/uuid"
)

// SortDirection is the direction of a sort clause
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Range bounds a field between optional inclusive limits
type Range struct {
	Min any
	Max any
}

// Filter represents query filter options shared by all repositories.
// Equals holds attribute-equality conditions, Ranges holds bounded
// conditions, and Search is a substring match on the entity's text fields.
type Filter struct {
	Offset         int
	Limit          int
	SortBy         string
	SortDir        SortDirection
	Search         string
	Equals         map[string]any
	Ranges         map[string]Range
	IncludeDeleted bool
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Offset:  0,
		Limit:   20,
		SortBy:  "created_at",
		SortDir: SortDesc,
		Equals:  make(map[string]any),
		Ranges:  make(map[string]Range),
	}
}

// WithEquals adds an equality condition and returns the filter
func (f Filter) WithEquals(field string, value any) Filter {
	if f.Equals == nil {
		f.Equals = make(map[string]any)
	}
	f.Equals[field] = value
	return f
}

// WithRange adds a range condition and returns the filter
func (f Filter) WithRange(field string, min, max any) Filter {
	if f.Ranges == nil {
		f.Ranges = make(map[string]Range)
	}
	f.Ranges[field] = Range{Min: min, Max: max}
	return f
}

// Paginated represents a paginated result envelope
type Paginated[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// NewPaginated creates a paginated result, deriving HasMore from the
// filter window and the total count.
func NewPaginated[T any](items []T, total int64, filter Filter) Paginated[T] {
	return Paginated[T]{
		Items:   items,
		Total:   total,
		HasMore: int64(filter.Offset+len(items)) < total,
	}
}

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter Filter) (int64, error)
	PermanentlyDelete(ctx context.Context, id uuid.UUID) error
}
