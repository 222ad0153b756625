package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, query ListQuery) ([]T, error)
	Count(ctx context.Context, query ListQuery) (int64, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Sort directions accepted by list queries
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Paging bounds shared by every list endpoint
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery carries validated paging, sorting and filtering options for
// a list operation. SortBy holds a resolved column name, never raw user
// input; repositories may interpolate it into ORDER BY safely.
type ListQuery struct {
	Page     int
	PageSize int
	SortBy   string
	Order    string
	Contains map[string]string // column -> case-insensitive substring
	Equals   map[string]any    // column -> exact value
}

// Offset returns the row offset implied by the page settings
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// WithContains adds a substring filter, allocating the map lazily
func (q ListQuery) WithContains(column, needle string) ListQuery {
	if needle == "" {
		return q
	}
	if q.Contains == nil {
		q.Contains = make(map[string]string)
	}
	q.Contains[column] = needle
	return q
}

// WithEquals adds an exact-match filter, allocating the map lazily
func (q ListQuery) WithEquals(column string, value any) ListQuery {
	if q.Equals == nil {
		q.Equals = make(map[string]any)
	}
	q.Equals[column] = value
	return q
}

// NewListQuery validates raw paging and sorting input against the
// entity's sort allow-list and builds a ListQuery. The allowed map
// translates public sort field names to column names; defaultSort must
// be a key of that map. Violations return validation errors.
func NewListQuery(page, pageSize int, sortBy, order string, allowed map[string]string, defaultSort string) (ListQuery, error) {
	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		return ListQuery{}, NewValidationError("page must be greater than or equal to 1")
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ListQuery{}, NewValidationError("page_size must be between 1 and 100")
	}

	normalizedOrder, err := NormalizeOrder(order)
	if err != nil {
		return ListQuery{}, err
	}

	column, err := ResolveSortField(sortBy, allowed, defaultSort)
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Page:     page,
		PageSize: pageSize,
		SortBy:   column,
		Order:    normalizedOrder,
	}, nil
}

// NormalizeOrder validates a sort direction. Empty input defaults to
// ascending; anything but asc/desc (case-insensitive) is rejected.
func NormalizeOrder(order string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	default:
		return "", NewValidationError("order must be 'asc' or 'desc'")
	}
}

// ResolveSortField maps a public sort field name to its column using
// the entity's allow-list. Empty input falls back to the default field;
// unknown fields are rejected.
func ResolveSortField(sortBy string, allowed map[string]string, defaultField string) (string, error) {
	trimmed := strings.TrimSpace(sortBy)
	if trimmed == "" {
		trimmed = defaultField
	}
	column, ok := allowed[trimmed]
	if !ok {
		return "", NewValidationError("unknown sort field: " + trimmed)
	}
	return column, nil
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items []T
	Total int64
}
