package models

// CartItem is a single cart line: the resolved product plus the quantity
// the caller asked for.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds a user's pending items and the running total.
// Invariant: Total always equals the sum of Quantity*Price over Items.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// AddItemRequest is the body of POST /api/cart/{userId}/add.
// Quantity is a pointer so that an omitted quantity (defaults to 1) can be
// told apart from an explicit zero, which is rejected.
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity,omitempty"`
}
