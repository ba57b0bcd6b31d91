package view

type ProductCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"image_url"`
	PriceCents int    `json:"price_cents"`
	Price      string `json:"price"`
	CompareAt  string `json:"compare_at,omitempty"`
	HeatLevel  int    `json:"heat_level"`
	Scoville   int    `json:"scoville"`
	InStock    bool   `json:"in_stock"`
	Currency   string `json:"currency"`
}
