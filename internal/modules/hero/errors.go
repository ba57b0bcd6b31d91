package hero

import "errors"

var (
	ErrNotFound = errors.New("hero image not found")
	ErrInvalid  = errors.New("title and image url are required")
)
