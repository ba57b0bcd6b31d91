package users

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrEmptySelection = errors.New("no users selected")
	ErrSelfAction     = errors.New("action not allowed on own account")
	ErrOutranked      = errors.New("insufficient role for this action")
	ErrInvalidRole    = errors.New("invalid role")
	ErrNegativePoints = errors.New("loyalty points cannot be negative")
)

// MissingUsersError lists selected ids that do not exist.
type MissingUsersError struct {
	IDs []string
}

func (e *MissingUsersError) Error() string {
	return "users not found: " + strings.Join(e.IDs, ",")
}
