package view

type CartItem struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductSlug    string `json:"product_slug"`
	ImageURL       string `json:"image_url"`
	Qty            int    `json:"qty"`
	Available      int    `json:"available"`
	UnitPriceCents int    `json:"unit_price_cents"`
	LineTotalCents int    `json:"line_total_cents"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
}

type CartPage struct {
	Items         []CartItem `json:"items"`
	Count         int        `json:"count"`
	Currency      string     `json:"currency"`
	SubtotalCents int        `json:"subtotal_cents"`
	Subtotal      string     `json:"subtotal"`
}
