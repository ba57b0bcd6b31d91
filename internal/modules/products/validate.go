package products

import (
	"slices"
	"strings"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/shared/slug"
)

// normalize trims the input, derives a missing slug from the name and
// fills defaults. It returns
// a *ValidationError when a constraint is violated.
func (in *Input) normalize(defaultCurrency string) error {
	in.SKU = strings.ToUpper(strings.TrimSpace(in.SKU))
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name, "product")
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}
	if in.HeatLevel == 0 {
		in.HeatLevel = 1
	}
	images := make([]string, 0, len(in.Images))
	for _, u := range in.Images {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, u)
		}
	}
	in.Images = images

	fields := map[string]string{}
	if in.SKU == "" {
		fields["sku"] = "SKU is required."
	}
	if in.Name == "" {
		fields["name"] = "Name is required."
	}
	if !slug.Valid(in.Slug) {
		fields["slug"] = "Slug may only contain a-z, 0-9 and dashes."
	}
	if in.PriceCents < 0 {
		fields["price_cents"] = "Price cannot be negative."
	}
	if in.CompareAtCents < 0 {
		fields["compare_at_cents"] = "Compare-at price cannot be negative."
	}
	if in.StockQuantity < 0 {
		fields["stock_quantity"] = "Stock cannot be negative."
	}
	if in.HeatLevel < 1 || in.HeatLevel > 10 {
		fields["heat_level"] = "Heat level must be between 1 and 10."
	}
	if in.Scoville < 0 {
		fields["scoville"] = "Scoville cannot be negative."
	}
	if len(in.Currency) != 3 {
		fields["currency"] = "Currency must be a 3-letter code."
	}
	if !slices.Contains(Statuses, in.Status) {
		fields["status"] = "Unknown status."
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
