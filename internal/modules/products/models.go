package products

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

var Statuses = []string{StatusDraft, StatusActive, StatusArchived}

type Product struct {
	ID              string                     `gorm:"type:char(36);primaryKey" json:"id"`
	SKU             string                     `gorm:"size:64;not null;uniqueIndex:ux_products_sku" json:"sku"`
	Name            string                     `gorm:"size:255;not null" json:"name"`
	Slug            string                     `gorm:"size:255;not null;uniqueIndex:ux_products_slug" json:"slug"`
	Description     string                     `gorm:"type:text" json:"description"`
	PriceCents      int                        `gorm:"not null" json:"price_cents"`
	CompareAtCents  int                        `gorm:"not null;default:0" json:"compare_at_cents"`
	Currency        string                     `gorm:"size:3;not null" json:"currency"`
	StockQuantity   int                        `gorm:"not null;default:0" json:"stock_quantity"`
	HeatLevel       int                        `gorm:"not null;default:1;index:ix_products_heat" json:"heat_level"`
	Scoville        int                        `gorm:"not null;default:0" json:"scoville"`
	Status          string                     `gorm:"size:16;not null;default:draft;index:ix_products_status" json:"status"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	MetaTitle       string                     `gorm:"size:255" json:"meta_title"`
	MetaDescription string                     `gorm:"size:500" json:"meta_description"`
	Categories      []Category                 `gorm:"many2many:product_categories;" json:"categories"`
	CreatedAt       time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                  `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p Product) InStock() bool { return p.StockQuantity > 0 }

type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex:ux_categories_slug" json:"slug"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

// Input carries the editable product fields for create and update.
type Input struct {
	SKU             string
	Name            string
	Slug            string
	Description     string
	PriceCents      int
	CompareAtCents  int
	Currency        string
	StockQuantity   int
	HeatLevel       int
	Scoville        int
	Status          string
	Images          []string
	MetaTitle       string
	MetaDescription string
	CategoryIDs     []string
}
