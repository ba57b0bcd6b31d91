package view

type CheckoutSummary struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Currency      string `json:"currency"`
	Items         int    `json:"items"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Shipping      string `json:"shipping"`
	Total         string `json:"total"`
	PointsEarned  int    `json:"points_earned"`
	PaymentStatus string `json:"payment_status"`
}
