// Package apperr carries the client-facing side of an error: a Kind that
// picks the HTTP status, a message safe to show, and optional per-field
// details. The wrapped cause is only ever logged.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	Invalid      Kind = "invalid"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	Conflict     Kind = "conflict"
	Unavailable  Kind = "unavailable"
	Internal     Kind = "internal"
)

var statusByKind = map[Kind]int{
	Invalid:      http.StatusBadRequest,
	NotFound:     http.StatusNotFound,
	Unauthorized: http.StatusUnauthorized,
	Forbidden:    http.StatusForbidden,
	Conflict:     http.StatusConflict,
	Unavailable:  http.StatusBadGateway,
	Internal:     http.StatusInternalServerError,
}

const genericMsg = "Something went wrong. Please try again."

type AppError struct {
	Kind      Kind
	PublicMsg string
	Fields    map[string]string
	Err       error
}

func (e *AppError) Error() string {
	msg := string(e.Kind)
	switch {
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	case e.PublicMsg != "":
		msg += ": " + e.PublicMsg
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Err }

// WithFields attaches field details and returns the same error.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields
	return e
}

func newErr(k Kind, msg string) *AppError { return &AppError{Kind: k, PublicMsg: msg} }

func InvalidErr(msg string, fields map[string]string) *AppError {
	return newErr(Invalid, msg).WithFields(fields)
}

func NotFoundErr(msg string) *AppError     { return newErr(NotFound, msg) }
func UnauthorizedErr(msg string) *AppError { return newErr(Unauthorized, msg) }
func ForbiddenErr(msg string) *AppError    { return newErr(Forbidden, msg) }
func ConflictErr(msg string) *AppError     { return newErr(Conflict, msg) }

// UnavailableErr reports a failing upstream such as the mail relay or the
// recommendation model.
func UnavailableErr(msg string, err error) *AppError {
	e := newErr(Unavailable, msg)
	e.Err = err
	return e
}

// Wrap returns the first *AppError in err's chain, or hides err behind
// the generic internal message.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &AppError{Kind: Internal, PublicMsg: genericMsg, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// HTTPStatus is 500 for anything that is not an *AppError of a known Kind.
func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		if st, known := statusByKind[ae.Kind]; known {
			return st
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return genericMsg
}
