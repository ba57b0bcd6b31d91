package seo

import "errors"

var (
	ErrNotFound    = errors.New("seo metadata not found")
	ErrInvalidPath = errors.New("page path must start with /")
)
