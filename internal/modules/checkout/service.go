package checkout

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/access"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/cart"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/email"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/orders"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/users"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

const txAttempts = 3

type Service struct {
	db     *gorm.DB
	shop   config.ShopConfig
	sender *email.Sender
	log    *slog.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, shop config.ShopConfig, sender *email.Sender, l *slog.Logger) *Service {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{db: db, shop: shop, sender: sender, log: l, now: time.Now}
}

type PlaceOrderInput struct {
	UserID          string
	ShippingAddress orders.Address
	BillingAddress  *orders.Address // nil: same as shipping
	Notes           string
}

type Result struct {
	Order   orders.Order
	Summary view.CheckoutSummary
}

// PlaceOrder turns the user's cart into a pending order in one transaction:
// stock is decremented, loyalty points are awarded and the cart is emptied.
// The confirmation e-mail goes out after commit and never fails the order.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (Result, error) {
	if !addressComplete(in.ShippingAddress) {
		return Result{}, ErrInvalidAddress
	}
	billing := in.ShippingAddress
	if in.BillingAddress != nil && addressComplete(*in.BillingAddress) {
		billing = *in.BillingAddress
	}

	var (
		order  orders.Order
		totals Totals
		user   users.User
	)
	err := withTxRetry(ctx, s.db, txAttempts, func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", in.UserID).Error; err != nil {
			if dberr.IsNotFound(err) {
				return users.ErrNotFound
			}
			return err
		}

		c, err := cart.GetOrCreateUserCartTx(ctx, tx, in.UserID)
		if err != nil {
			return err
		}
		lines, err := cart.LinesTx(ctx, tx, c.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		currency := ""
		var unavailable []string
		stock := make([]StockLine, 0, len(lines))
		subtotal := 0
		for _, ln := range lines {
			if ln.Status != products.StatusActive {
				unavailable = append(unavailable, ln.ProductID)
				continue
			}
			lc := strings.ToUpper(ln.Currency)
			if currency == "" {
				currency = lc
			} else if lc != currency {
				return ErrMixedCurrency
			}
			subtotal += ln.PriceCents * ln.Qty
			stock = append(stock, StockLine{ProductID: ln.ProductID, Qty: ln.Qty})
		}
		if len(unavailable) > 0 {
			return &UnavailableError{ProductIDs: unavailable}
		}

		if err := DeductStockInTx(ctx, tx, stock); err != nil {
			return err
		}

		wholesale := user.Role == access.Wholesale && user.WholesaleApproved
		totals = ComputeTotals(subtotal, wholesale, s.shop)

		now := s.now()
		userID := user.ID
		order = orders.Order{
			ID:                  uuid.NewString(),
			OrderNumber:         NewOrderNumber(now),
			UserID:              &userID,
			Email:               user.Email,
			Status:              orders.StatusPending,
			PaymentStatus:       orders.PaymentPending,
			SubtotalCents:       totals.Subtotal,
			DiscountCents:       totals.Discount,
			ShippingCents:       totals.Shipping,
			TaxCents:            totals.Tax,
			TotalCents:          totals.Total,
			Currency:            currency,
			ShippingAddress:     datatypes.NewJSONType(in.ShippingAddress),
			BillingAddress:      datatypes.NewJSONType(billing),
			Notes:               strings.TrimSpace(in.Notes),
			LoyaltyPointsEarned: totals.Points,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		for _, ln := range lines {
			order.Items = append(order.Items, orders.OrderItem{
				ID:             uuid.NewString(),
				OrderID:        order.ID,
				ProductID:      ln.ProductID,
				ProductName:    ln.ProductName,
				SKU:            ln.SKU,
				UnitPriceCents: ln.PriceCents,
				Quantity:       ln.Qty,
				LineTotalCents: ln.PriceCents * ln.Qty,
				Currency:       currency,
				CreatedAt:      now,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			if dberr.IsDuplicateKey(err) {
				return errNumberTaken
			}
			return err
		}
		if err := users.AddLoyaltyPointsTx(ctx, tx, user.ID, totals.Points); err != nil {
			return err
		}
		return cart.ClearCartTx(ctx, tx, c.ID)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"user_id", in.UserID,
		"total_cents", order.TotalCents,
	)
	s.sendConfirmation(ctx, user, order, totals)

	return Result{Order: order, Summary: summarize(order, totals)}, nil
}

func (s *Service) sendConfirmation(ctx context.Context, u users.User, o orders.Order, t Totals) {
	if s.sender == nil {
		return
	}
	m := email.OrderMail{
		Number:   o.OrderNumber,
		Subtotal: view.MoneyFromCents(t.Subtotal, o.Currency),
		Shipping: view.MoneyFromCents(t.Shipping, o.Currency),
		Total:    view.MoneyFromCents(t.Total, o.Currency),
		Points:   t.Points,
	}
	if t.Discount > 0 {
		m.Discount = view.MoneyFromCents(t.Discount, o.Currency)
	}
	for _, it := range o.Items {
		m.Lines = append(m.Lines, email.OrderLine{
			Name:      it.ProductName,
			Qty:       it.Quantity,
			LineTotal: view.MoneyFromCents(it.LineTotalCents, it.Currency),
		})
	}
	// the order is committed; a mail failure is only logged
	if err := s.sender.OrderConfirmation(context.WithoutCancel(ctx), o.Email, u.FullName(), m); err != nil {
		s.log.WarnContext(ctx, "order confirmation not sent", "order_id", o.ID, "err", err)
	}
}

func summarize(o orders.Order, t Totals) view.CheckoutSummary {
	qty := 0
	for _, it := range o.Items {
		qty += it.Quantity
	}
	return view.CheckoutSummary{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Currency:      o.Currency,
		Items:         qty,
		Subtotal:      view.MoneyFromCents(t.Subtotal, o.Currency),
		Discount:      view.MoneyFromCents(t.Discount, o.Currency),
		Shipping:      view.MoneyFromCents(t.Shipping, o.Currency),
		Total:         view.MoneyFromCents(t.Total, o.Currency),
		PointsEarned:  t.Points,
		PaymentStatus: o.PaymentStatus,
	}
}

func addressComplete(a orders.Address) bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}
