package models

// CheckoutRequest is the body of POST /api/checkout
type CheckoutRequest struct {
	UserID string `json:"user_id"`
}

// Order is the checkout receipt. It is returned once and never stored;
// a completed order cannot be retrieved again.
type Order struct {
	OrderID    string  `json:"order_id"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	ItemsCount int     `json:"items_count"`
}
