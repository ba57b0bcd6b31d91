// Package errmap translates module errors into *apperr.AppError for the
// HTTP layer.
package errmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/auth"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/blog"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/cart"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/checkout"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/heat"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/hero"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/media"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/seo"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/apperr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/storage"
)

var notFound = map[error]string{
	users.ErrNotFound:          "User not found.",
	products.ErrNotFound:       "Product not found.",
	orders.ErrNotFound:         "Order not found.",
	blog.ErrNotFound:           "Post not found.",
	hero.ErrNotFound:           "Hero image not found.",
	media.ErrNotFound:          "Media item not found.",
	seo.ErrNotFound:            "No SEO metadata for this page.",
	heat.ErrNotFound:           "No heat profile yet. Take the quiz first.",
	cart.ErrItemNotFound:       "That product is not in your cart.",
	cart.ErrProductUnavailable: "That product is not available.",
}

var conflict = map[error]string{
	products.ErrDuplicate:     "SKU or slug already in use.",
	products.ErrCategoryInUse: "Category slug already in use.",
	cart.ErrMixedCurrency:     "Your cart mixes currencies.",
	checkout.ErrMixedCurrency: "Your cart mixes currencies.",
}

type invalid struct {
	field string
	msg   string
}

var invalidErrs = map[error]invalid{
	users.ErrEmptySelection:        {"user_ids", "Select at least one user."},
	users.ErrInvalidRole:           {"role", "Unknown role."},
	users.ErrNegativePoints:        {"points", "Points cannot be negative."},
	products.ErrCategoryNotFound:   {"category_ids", "Unknown category."},
	cart.ErrInvalidQty:             {"qty", "Quantity must be between 1 and 99."},
	checkout.ErrEmptyCart:          {"cart", "Your cart is empty."},
	checkout.ErrInvalidAddress:     {"shipping_address", "Shipping address is incomplete."},
	orders.ErrInvalidStatus:        {"status", "Unknown order status."},
	orders.ErrInvalidPaymentStatus: {"payment_status", "Unknown payment status."},
	orders.ErrNothingToUpdate:      {"_", "Nothing to update."},
	hero.ErrInvalid:                {"_", "Title and image URL are required."},
	seo.ErrInvalidPath:             {"page_path", "Page path must start with /."},
	storage.ErrUnsupportedType:     {"file", "Upload a png, jpg, webp or gif image."},
	storage.ErrTooLarge:            {"file", "Images may be at most 10 MB."},
}

// From maps err to an *apperr.AppError. Unknown errors become internal.
func From(err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := apperr.As(err); ok {
		return ae
	}

	for target, msg := range notFound {
		if errors.Is(err, target) {
			return &apperr.AppError{Kind: apperr.NotFound, PublicMsg: msg, Err: err}
		}
	}
	for target, msg := range conflict {
		if errors.Is(err, target) {
			return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: msg, Err: err}
		}
	}
	for target, iv := range invalidErrs {
		if errors.Is(err, target) {
			return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: iv.msg, Fields: map[string]string{iv.field: iv.msg}, Err: err}
		}
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &apperr.AppError{Kind: apperr.Unauthorized, PublicMsg: "Invalid e-mail or password.", Err: err}
	case errors.Is(err, auth.ErrSessionNotFound):
		return &apperr.AppError{Kind: apperr.Unauthorized, PublicMsg: "Please sign in to continue.", Err: err}
	case errors.Is(err, users.ErrEmailTaken):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "That e-mail is already registered.",
			Fields: map[string]string{"email": "Already registered."}, Err: err}
	case errors.Is(err, blog.ErrDuplicateSlug):
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Slug already in use.",
			Fields: map[string]string{"slug": "Already in use."}, Err: err}
	case errors.Is(err, users.ErrSelfAction):
		return &apperr.AppError{Kind: apperr.Forbidden, PublicMsg: "You cannot do that to your own account.", Err: err}
	case errors.Is(err, users.ErrOutranked):
		return &apperr.AppError{Kind: apperr.Forbidden, PublicMsg: "Your role does not allow this change.", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.UnavailableErr("The request timed out. Please try again.", err)
	}

	var missing *users.MissingUsersError
	if errors.As(err, &missing) {
		fields := make(map[string]string, len(missing.IDs))
		for _, id := range missing.IDs {
			fields[id] = "User not found."
		}
		return &apperr.AppError{Kind: apperr.NotFound, PublicMsg: "Some selected users no longer exist.", Fields: fields, Err: err}
	}
	var pve *products.ValidationError
	if errors.As(err, &pve) {
		return apperr.InvalidErr("Please fix the highlighted fields.", pve.Fields)
	}
	var bve *blog.ValidationError
	if errors.As(err, &bve) {
		return apperr.InvalidErr("Please fix the highlighted fields.", bve.Fields)
	}
	var iae *heat.InvalidAnswersError
	if errors.As(err, &iae) {
		return apperr.InvalidErr("Please answer every question.", iae.Fields)
	}
	var oos *checkout.OutOfStockError
	if errors.As(err, &oos) {
		fields := make(map[string]string, len(oos.Items))
		for _, it := range oos.Items {
			fields[it.ProductID] = fmt.Sprintf("Only %d left.", it.Available)
		}
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Some items are out of stock.", Fields: fields, Err: err}
	}
	var un *checkout.UnavailableError
	if errors.As(err, &un) {
		fields := make(map[string]string, len(un.ProductIDs))
		for _, id := range un.ProductIDs {
			fields[id] = "No longer available."
		}
		return &apperr.AppError{Kind: apperr.Conflict, PublicMsg: "Some items are no longer available.", Fields: fields, Err: err}
	}

	return apperr.Wrap(err)
}
