package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{UnauthorizedErr("login"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{NotFoundErr("gone"), http.StatusNotFound},
		{ConflictErr("dup"), http.StatusConflict},
		{UnavailableErr("mail down", errors.New("dial")), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("ctx: %w", NotFoundErr("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	inner := ConflictErr("taken")
	assert.Same(t, inner, Wrap(fmt.Errorf("repo: %w", inner)))

	cause := errors.New("db down")
	w := Wrap(cause)
	assert.Equal(t, Internal, w.Kind)
	assert.ErrorIs(t, w, cause)
	assert.Equal(t, genericMsg, PublicMessage(w))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product not found.", PublicMessage(NotFoundErr("Product not found.")))
	assert.Equal(t, genericMsg, PublicMessage(errors.New("secret detail")))
}

func TestUnknownKindIsInternal(t *testing.T) {
	err := &AppError{Kind: "teapot", PublicMsg: "short and stout"}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "teapot: short and stout", err.Error())
}
