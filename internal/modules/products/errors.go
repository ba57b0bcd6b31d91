package products

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicate        = errors.New("sku or slug already in use")
	ErrCategoryInUse    = errors.New("category slug already in use")
)

// ValidationError lists field problems found before touching the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid product input" }
