package pricing

import (
	"testing"

	"storefront-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteCartReferenceScenario(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 2},
		{ID: "p2", Price: 1000, Quantity: 1},
	}

	quote := QuoteCart(items, "WELCOME50")

	assert.Equal(t, float64(2000), quote.Subtotal)
	assert.Equal(t, float64(500), quote.Discount)
	assert.Equal(t, float64(0), quote.Delivery, "subtotal over the threshold ships free")
	assert.Equal(t, float64(1500), quote.Total)
	assert.Equal(t, "WELCOME50", quote.Coupon)
}

func TestDiscountIsIdempotent(t *testing.T) {
	items := []models.CartItem{{ID: "p1", Price: 500, Quantity: 2}}

	first := QuoteCart(items, "WELCOME50")
	second := QuoteCart(items, "WELCOME50")

	// Discount is a pure function of code and subtotal, never of call count.
	require.Equal(t, first.Discount, second.Discount)
	require.Equal(t, first.Total, second.Total)
}

func TestDiscountRules(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		subtotal float64
		want     float64
	}{
		{"welcome50 is a flat 500", "WELCOME50", 2000, 500},
		{"save10 is proportional", "SAVE10", 2000, 200},
		{"codes are case-normalized", "welcome50", 2000, 500},
		{"surrounding whitespace is trimmed", "  save10 ", 1000, 100},
		{"unknown code discounts nothing", "BOGUS", 2000, 0},
		{"empty code discounts nothing", "", 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Discount(tt.code, tt.subtotal))
		})
	}
}

func TestDeliveryCharge(t *testing.T) {
	assert.Equal(t, float64(DeliveryFee), DeliveryCharge(999), "at the threshold still pays delivery")
	assert.Equal(t, float64(0), DeliveryCharge(1000))
	assert.Equal(t, float64(DeliveryFee), DeliveryCharge(0))
}

func TestSubtotalSumsPriceTimesQuantity(t *testing.T) {
	items := []models.CartItem{
		{Price: 19.99, Quantity: 3},
		{Price: 5, Quantity: 1},
	}
	assert.InDelta(t, 64.97, Subtotal(items), 0.0001)
	assert.Equal(t, float64(0), Subtotal(nil))
}

func TestValidCoupon(t *testing.T) {
	assert.True(t, ValidCoupon("welcome50"))
	assert.False(t, ValidCoupon("EXPIRED99"))
}
