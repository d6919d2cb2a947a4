package models

// PlaceholderImage is used for cart items whose product carries no image.
const PlaceholderImage = "/api/placeholder/400/400"

// CartItem is the flat view model the storefront renders. It is rebuilt from
// the upstream's nested shape on every fetch; quantity is clamped to stay >= 1.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	InStock  bool    `json:"in_stock"`
}

// UpdateQuantityRequest adjusts an item's quantity by a signed delta.
// A delta that would push the quantity below 1 is clamped, not rejected.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartResponse is the cart view plus the price quote for an optional coupon.
type CartResponse struct {
	Items []CartItem `json:"items"`
	Quote Quote      `json:"quote"`
}

// Quote is the monetary breakdown of the current cart.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Delivery float64 `json:"delivery"`
	Total    float64 `json:"total"`
	Coupon   string  `json:"coupon,omitempty"`
}
