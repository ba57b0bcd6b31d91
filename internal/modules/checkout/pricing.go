package checkout

import "github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"

type Totals struct {
	Subtotal int
	Discount int
	Shipping int
	Tax      int
	Total    int
	Points   int
}

// ComputeTotals prices a cart. Wholesale discounts apply before the free
// shipping threshold is checked. Loyalty points are one per whole currency
// unit of discounted merchandise; shipping earns nothing.
func ComputeTotals(subtotal int, wholesale bool, shop config.ShopConfig) Totals {
	t := Totals{Subtotal: subtotal}
	if wholesale && shop.WholesaleDiscountPct > 0 {
		t.Discount = subtotal * shop.WholesaleDiscountPct / 100
	}
	merch := subtotal - t.Discount

	t.Shipping = shop.FlatShippingCents
	if shop.FreeShippingOver > 0 && merch >= shop.FreeShippingOver {
		t.Shipping = 0
	}
	t.Total = merch + t.Shipping + t.Tax
	t.Points = merch / 100
	return t
}
