package cart

import "errors"

var (
	ErrMixedCurrency      = errors.New("cart contains multiple currencies")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInvalidQty         = errors.New("quantity out of range")
	ErrItemNotFound       = errors.New("item not in cart")
)
