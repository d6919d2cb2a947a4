// Package pricing computes the cart's monetary breakdown. Every amount is a
// pure function of the items and the coupon code, never of call count, so
// applying the same coupon twice yields the same discount as applying it once.
package pricing

import (
	"strings"

	"storefront-gateway/internal/models"
)

const (
	// FreeDeliveryThreshold is the subtotal above which delivery is free.
	FreeDeliveryThreshold = 999
	// DeliveryFee applies to orders at or below the threshold.
	DeliveryFee = 79
)

// coupons maps a normalized coupon code to its discount rule.
var coupons = map[string]func(subtotal float64) float64{
	// WELCOME50 takes a flat 500 off.
	"WELCOME50": func(float64) float64 { return 500 },
	// SAVE10 takes 10% off the subtotal.
	"SAVE10": func(subtotal float64) float64 { return subtotal * 0.10 },
}

// NormalizeCoupon uppercases and trims a coupon code the way the storefront
// input field does.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCoupon reports whether the code matches a known coupon.
func ValidCoupon(code string) bool {
	_, ok := coupons[NormalizeCoupon(code)]
	return ok
}

// Subtotal sums price times quantity over the cart.
func Subtotal(items []models.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Discount returns the amount the coupon takes off the given subtotal.
// Unknown codes discount nothing.
func Discount(code string, subtotal float64) float64 {
	rule, ok := coupons[NormalizeCoupon(code)]
	if !ok {
		return 0
	}
	return rule(subtotal)
}

// DeliveryCharge is zero above the free-delivery threshold, the flat fee otherwise.
func DeliveryCharge(subtotal float64) float64 {
	if subtotal > FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFee
}

// QuoteCart produces the full breakdown for a cart and an optional coupon.
func QuoteCart(items []models.CartItem, coupon string) models.Quote {
	subtotal := Subtotal(items)
	discount := Discount(coupon, subtotal)
	delivery := DeliveryCharge(subtotal)

	quote := models.Quote{
		Subtotal: subtotal,
		Discount: discount,
		Delivery: delivery,
		Total:    subtotal - discount + delivery,
	}
	if discount > 0 {
		quote.Coupon = NormalizeCoupon(coupon)
	}
	return quote
}
