package view

import "time"

type OrderListItem struct {
	ID            string    `json:"id"`
	Number        string    `json:"order_number"`
	CreatedAt     time.Time `json:"created_at"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Email         string    `json:"email"`
	TotalCents    int       `json:"total_cents"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	ItemCount     int       `json:"item_count"`
}
