package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Line1 string `json:"line1" validate:"required"`
}

type signup struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"min=8"`
	Ship     address `json:"shipping_address"`
}

func TestFromBindError(t *testing.T) {
	in := signup{Email: "nope", Password: "short"}
	err := validator.New().Struct(in)
	require.Error(t, err)

	fe := FromBindError(err, &in)
	assert.Equal(t, "Enter a valid e-mail address.", fe["email"])
	assert.Equal(t, "Must be at least 8.", fe["password"])
	assert.Equal(t, "This field is required.", fe["shipping_address.line1"])
}

func TestFromBindError_Other(t *testing.T) {
	fe := FromBindError(assert.AnError, nil)
	assert.Equal(t, FieldErrors{"_": "Request body is invalid."}, fe)
}
