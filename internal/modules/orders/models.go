package orders

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var (
	Statuses        = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
)

type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type Order struct {
	ID                  string                      `gorm:"type:char(36);primaryKey" json:"id"`
	OrderNumber         string                      `gorm:"size:32;not null;uniqueIndex:ux_orders_number" json:"order_number"`
	UserID              *string                     `gorm:"type:char(36);index:ix_orders_user_id" json:"user_id"`
	Email               string                      `gorm:"size:255;not null;index:ix_orders_email" json:"email"`
	Status              string                      `gorm:"size:16;not null;index:ix_orders_status" json:"status"`
	PaymentStatus       string                      `gorm:"size:16;not null" json:"payment_status"`
	SubtotalCents       int                         `gorm:"not null" json:"subtotal_cents"`
	DiscountCents       int                         `gorm:"not null;default:0" json:"discount_cents"`
	ShippingCents       int                         `gorm:"not null;default:0" json:"shipping_cents"`
	TaxCents            int                         `gorm:"not null;default:0" json:"tax_cents"`
	TotalCents          int                         `gorm:"not null" json:"total_cents"`
	Currency            string                      `gorm:"size:3;not null" json:"currency"`
	ShippingAddress     datatypes.JSONType[Address] `json:"shipping_address"`
	BillingAddress      datatypes.JSONType[Address] `json:"billing_address"`
	Notes               string                      `gorm:"size:1000" json:"notes"`
	LoyaltyPointsEarned int                         `gorm:"not null;default:0" json:"loyalty_points_earned"`
	Items               []OrderItem                 `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt           time.Time                   `gorm:"not null;index:ix_orders_created_at" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID        string    `gorm:"type:char(36);not null;index:ix_order_items_order_id" json:"order_id"`
	ProductID      string    `gorm:"type:char(36);not null;index:ix_order_items_product_id" json:"product_id"`
	ProductName    string    `gorm:"size:255;not null" json:"product_name"`
	SKU            string    `gorm:"size:64;not null" json:"sku"`
	UnitPriceCents int       `gorm:"not null" json:"unit_price_cents"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	LineTotalCents int       `gorm:"not null" json:"line_total_cents"`
	Currency       string    `gorm:"size:3;not null" json:"currency"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is the audit trail of admin edits, one row per changed field.
type OrderEvent struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string    `gorm:"type:char(36);not null;index:ix_order_events_order_id" json:"order_id"`
	ActorUserID string    `gorm:"type:char(36);not null" json:"actor_user_id"`
	Field       string    `gorm:"size:32;not null" json:"field"` // status|payment_status|note
	FromValue   string    `gorm:"size:32;not null;default:''" json:"from"`
	ToValue     string    `gorm:"size:32;not null;default:''" json:"to"`
	Note        *string   `gorm:"size:1000" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (OrderEvent) TableName() string { return "order_events" }
