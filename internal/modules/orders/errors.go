package orders

import "errors"

var (
	ErrNotFound             = errors.New("order not found")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
	ErrNothingToUpdate      = errors.New("nothing to update")
)
