package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/modules/products"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/dberr"
	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/pkg/view"
)

type Service struct {
	db           *gorm.DB
	repo         *Repo
	baseCurrency string
}

func NewService(db *gorm.DB, baseCurrency string) *Service {
	return &Service{db: db, repo: NewRepo(db), baseCurrency: strings.ToUpper(baseCurrency)}
}

// Line is one cart line joined with its product row.
type Line struct {
	ProductID   string `gorm:"column:product_id"`
	Qty         int    `gorm:"column:qty"`
	PriceCents  int    `gorm:"column:price_cents"`
	Currency    string `gorm:"column:currency"`
	Stock       int    `gorm:"column:stock"`
	Status      string `gorm:"column:status"`
	SKU         string `gorm:"column:sku"`
	ProductName string `gorm:"column:product_name"`
	ProductSlug string `gorm:"column:product_slug"`
	Images      string `gorm:"column:images"`
}

const linesQuery = `
SELECT
  ci.product_id     AS product_id,
  ci.quantity       AS qty,
  p.price_cents     AS price_cents,
  p.currency        AS currency,
  p.stock_quantity  AS stock,
  p.status          AS status,
  p.sku             AS sku,
  p.name            AS product_name,
  p.slug            AS product_slug,
  p.images          AS images
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC, ci.id ASC
`

// LinesTx loads the cart lines inside db, which may be a transaction.
func LinesTx(ctx context.Context, db *gorm.DB, cartID string) ([]Line, error) {
	var rows []Line
	err := db.WithContext(ctx).Raw(linesQuery, cartID).Scan(&rows).Error
	return rows, err
}

func (s *Service) BuildCartPageForUser(ctx context.Context, userID string) (view.CartPage, error) {
	if userID == "" {
		return view.CartPage{}, errors.New("missing userID")
	}
	c, err := s.repo.GetOrCreateUserCart(ctx, userID)
	if err != nil {
		return view.CartPage{}, err
	}
	rows, err := LinesTx(ctx, s.db, c.ID)
	if err != nil {
		return view.CartPage{}, err
	}
	return s.buildCartVMFromRows(rows)
}

// Add puts qty units of an active product into the user's cart.
func (s *Service) Add(ctx context.Context, userID, productID string, qty int) (view.CartPage, error) {
	if qty < 1 || qty > MaxQty {
		return view.CartPage{}, ErrInvalidQty
	}
	if err := s.ensureAvailable(ctx, productID); err != nil {
		return view.CartPage{}, err
	}
	c, err := s.repo.GetOrCreateUserCart(ctx, userID)
	if err != nil {
		return view.CartPage{}, err
	}
	if err := s.repo.AddItem(ctx, c.ID, productID, qty); err != nil {
		return view.CartPage{}, err
	}
	return s.BuildCartPageForUser(ctx, userID)
}

// SetQty changes a line's quantity; zero removes it.
func (s *Service) SetQty(ctx context.Context, userID, productID string, qty int) (view.CartPage, error) {
	if qty < 0 || qty > MaxQty {
		return view.CartPage{}, ErrInvalidQty
	}
	c, err := s.repo.GetOrCreateUserCart(ctx, userID)
	if err != nil {
		return view.CartPage{}, err
	}
	if err := s.repo.UpdateItemQty(ctx, c.ID, productID, qty); err != nil {
		return view.CartPage{}, err
	}
	return s.BuildCartPageForUser(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (view.CartPage, error) {
	return s.SetQty(ctx, userID, productID, 0)
}

func (s *Service) ensureAvailable(ctx context.Context, productID string) error {
	var p products.Product
	err := s.db.WithContext(ctx).Select("id", "status").First(&p, "id = ?", productID).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return ErrProductUnavailable
		}
		return err
	}
	if p.Status != products.StatusActive {
		return ErrProductUnavailable
	}
	return nil
}

func (s *Service) buildCartVMFromRows(rows []Line) (view.CartPage, error) {
	vm := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}

	currency := ""
	subtotal := 0
	count := 0
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		rc := strings.ToUpper(strings.TrimSpace(r.Currency))
		if currency == "" {
			currency = rc
		} else if rc != "" && rc != currency {
			return view.CartPage{}, ErrMixedCurrency
		}

		line := r.PriceCents * r.Qty
		subtotal += line
		count += r.Qty

		vm.Items = append(vm.Items, view.CartItem{
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			ProductSlug:    r.ProductSlug,
			ImageURL:       firstImage(r.Images),
			Qty:            r.Qty,
			Available:      r.Stock,
			UnitPriceCents: r.PriceCents,
			LineTotalCents: line,
			UnitPrice:      view.MoneyFromCents(r.PriceCents, rc),
			LineTotal:      view.MoneyFromCents(line, rc),
		})
	}
	if currency == "" {
		currency = s.baseCurrency
	}

	vm.Currency = currency
	vm.Count = count
	vm.SubtotalCents = subtotal
	vm.Subtotal = view.MoneyFromCents(subtotal, currency)
	return vm, nil
}

// firstImage pulls the first URL out of the raw JSON images column.
func firstImage(raw string) string {
	var imgs []string
	if err := json.Unmarshal([]byte(raw), &imgs); err != nil || len(imgs) == 0 {
		return ""
	}
	return imgs[0]
}
