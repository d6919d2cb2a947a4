package models

// CheckoutStep is one of the three linear checkout stages.
type CheckoutStep string

const (
	StepAddress CheckoutStep = "address"
	StepPayment CheckoutStep = "payment"
	StepReview  CheckoutStep = "review"
)

// PaymentMethod is the internal payment selection. The upstream receives the
// display label, not this value.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

// PaymentLabel maps a payment method to the display label the upstream
// order payload expects.
func PaymentLabel(m PaymentMethod) string {
	switch m {
	case PaymentCOD:
		return "Cash on Delivery"
	case PaymentCard:
		return "Card"
	default:
		return "UPI"
	}
}

// CheckoutState is the transient per-user state of one checkout session.
// It is created fresh on first touch and discarded on successful submission;
// step only advances forward through explicit actions, while backward
// transitions are always permitted.
type CheckoutState struct {
	Step                 CheckoutStep  `json:"step"`
	SelectedAddressIndex int           `json:"selected_address_index"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	Coupon               string        `json:"coupon,omitempty"`
	// IdempotencyKey is attached to the order submission so a manual retry
	// after a transport failure cannot create a duplicate order upstream.
	IdempotencyKey string `json:"-"`
}

type SelectAddressRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type SelectPaymentRequest struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=cod upi card"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// CheckoutView is the aggregate the checkout page renders: current state,
// the address list with its preselection, the cart and the price quote.
type CheckoutView struct {
	State     CheckoutState `json:"state"`
	Addresses []Address     `json:"addresses"`
	Items     []CartItem    `json:"items"`
	Quote     Quote         `json:"quote"`
}

// SubmitResponse acknowledges a confirmed order; the UI navigates to the
// order-success view on receipt.
type SubmitResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id,omitempty"`
}
