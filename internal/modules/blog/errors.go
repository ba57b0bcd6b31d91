package blog

import "errors"

var (
	ErrNotFound      = errors.New("post not found")
	ErrDuplicateSlug = errors.New("post slug already in use")
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid post input" }
