package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("shipping address incomplete")
	ErrMixedCurrency  = errors.New("cart contains multiple currencies")

	errNumberTaken = errors.New("order number already used")
)

type OutOfStockItem struct {
	ProductID string
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%s requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}

func (e *OutOfStockError) ProductIDs() []string {
	out := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		out = append(out, it.ProductID)
	}
	return out
}

// UnavailableError lists cart products that are no longer active.
type UnavailableError struct {
	ProductIDs []string
}

func (e *UnavailableError) Error() string {
	return "products unavailable: " + strings.Join(e.ProductIDs, ",")
}
