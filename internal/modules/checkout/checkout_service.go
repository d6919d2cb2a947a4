package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/email"
	"storefront-gateway/pkg/pricing"

	"github.com/google/uuid"
)

// Action is a user-driven step transition.
type Action string

const (
	ActionContinue Action = "continue"
	ActionBack     Action = "back"
)

// transitions is the full step machine: current step x action -> next step.
// A pair absent from the table is an illegal transition; forward moves exist
// only in order and backward moves are always present.
var transitions = map[models.CheckoutStep]map[Action]models.CheckoutStep{
	models.StepAddress: {
		ActionContinue: models.StepPayment,
	},
	models.StepPayment: {
		ActionContinue: models.StepReview,
		ActionBack:     models.StepAddress,
	},
	models.StepReview: {
		ActionBack: models.StepPayment,
	},
}

// CartProvider is the slice of the cart module checkout reads from.
type CartProvider interface {
	Items(ctx context.Context, session models.Session) ([]models.CartItem, error)
}

// AddressProvider is the slice of the address module checkout reads from.
type AddressProvider interface {
	ListAddresses(ctx context.Context, session models.Session) ([]models.Address, int)
}

// OrderRepositoryInterface submits the assembled order upstream.
type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, session models.Session, payload models.OrderPayload, idempotencyKey string) (string, error)
}

// ServiceInterface defines the checkout orchestration logic.
type ServiceInterface interface {
	View(ctx context.Context, session models.Session) (*models.CheckoutView, error)
	Advance(ctx context.Context, session models.Session) (*models.CheckoutState, error)
	Back(ctx context.Context, session models.Session) (*models.CheckoutState, error)
	SelectAddress(ctx context.Context, session models.Session, index int) (*models.CheckoutState, error)
	SelectPayment(ctx context.Context, session models.Session, method models.PaymentMethod) (*models.CheckoutState, error)
	ApplyCoupon(ctx context.Context, session models.Session, code string) (*models.CheckoutView, error)
	Submit(ctx context.Context, session models.Session) (*models.SubmitResponse, error)
}

// Service drives the checkout step machine and order submission. Checkout
// state is transient and per-user: created fresh on first touch, discarded on
// successful submission, kept in memory only.
type Service struct {
	orders    OrderRepositoryInterface
	carts     CartProvider
	addresses AddressProvider
	emailer   email.ServiceInterface
	templates *email.TemplateManager

	mu     sync.Mutex
	states map[string]*models.CheckoutState
}

// NewService creates the checkout service.
func NewService(orders OrderRepositoryInterface, carts CartProvider, addresses AddressProvider, emailer email.ServiceInterface, templates *email.TemplateManager) *Service {
	return &Service{
		orders:    orders,
		carts:     carts,
		addresses: addresses,
		emailer:   emailer,
		templates: templates,
		states:    make(map[string]*models.CheckoutState),
	}
}

// state returns the user's checkout state, creating it at step address with
// the given preselected index when none exists yet.
func (s *Service) state(userID string, selectedIndex int) *models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok {
		st = &models.CheckoutState{
			Step:                 models.StepAddress,
			SelectedAddressIndex: selectedIndex,
			PaymentMethod:        models.PaymentUPI,
			IdempotencyKey:       uuid.New().String(),
		}
		s.states[userID] = st
	}
	return st
}

// View assembles everything the checkout page renders.
func (s *Service) View(ctx context.Context, session models.Session) (*models.CheckoutView, error) {
	items, err := s.carts.Items(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service.View: %w", err)
	}
	addrs, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	view := &models.CheckoutView{
		State:     *st,
		Addresses: addrs,
		Items:     items,
		Quote:     pricing.QuoteCart(items, st.Coupon),
	}
	s.mu.Unlock()
	return view, nil
}

// Advance moves one step forward. The address step is gated: it requires a
// non-empty address list and a selected index inside it; a violation leaves
// the machine where it was.
func (s *Service) Advance(ctx context.Context, session models.Session) (*models.CheckoutState, error) {
	addrs, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := transitions[st.Step][ActionContinue]
	if !ok {
		return nil, fmt.Errorf("service.Advance: %w", models.ErrTransitionNotPermitted)
	}
	if st.Step == models.StepAddress {
		if len(addrs) == 0 || st.SelectedAddressIndex < 0 || st.SelectedAddressIndex >= len(addrs) {
			return nil, fmt.Errorf("service.Advance: %w", models.ErrNoAddressSelected)
		}
	}

	st.Step = next
	copied := *st
	return &copied, nil
}

// Back moves one step backward; always permitted from payment and review.
func (s *Service) Back(ctx context.Context, session models.Session) (*models.CheckoutState, error) {
	_, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := transitions[st.Step][ActionBack]
	if !ok {
		return nil, fmt.Errorf("service.Back: %w", models.ErrTransitionNotPermitted)
	}
	st.Step = next
	copied := *st
	return &copied, nil
}

// SelectAddress records the chosen address index after validating it against
// the latest fetched list.
func (s *Service) SelectAddress(ctx context.Context, session models.Session, index int) (*models.CheckoutState, error) {
	addrs, idx := s.addresses.ListAddresses(ctx, session)
	if index < 0 || index >= len(addrs) {
		return nil, fmt.Errorf("service.SelectAddress: %w", models.ErrNoAddressSelected)
	}
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.SelectedAddressIndex = index
	copied := *st
	return &copied, nil
}

// SelectPayment records the payment method; there is always a default, so
// the payment step never blocks.
func (s *Service) SelectPayment(ctx context.Context, session models.Session, method models.PaymentMethod) (*models.CheckoutState, error) {
	_, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.PaymentMethod = method
	copied := *st
	return &copied, nil
}

// ApplyCoupon stores the normalized code and returns the refreshed view.
// Unknown codes simply discount nothing; the quote makes that visible.
func (s *Service) ApplyCoupon(ctx context.Context, session models.Session, code string) (*models.CheckoutView, error) {
	_, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	st.Coupon = pricing.NormalizeCoupon(code)
	s.mu.Unlock()

	return s.View(ctx, session)
}

// Submit places the order. Preconditions are checked without touching the
// upstream; a failed submission leaves the state at review so the user can
// retry manually. There is no automatic retry.
func (s *Service) Submit(ctx context.Context, session models.Session) (*models.SubmitResponse, error) {
	addrs, idx := s.addresses.ListAddresses(ctx, session)
	st := s.state(session.UserID, idx)

	s.mu.Lock()
	step := st.Step
	selected := st.SelectedAddressIndex
	method := st.PaymentMethod
	coupon := st.Coupon
	idempotencyKey := st.IdempotencyKey
	s.mu.Unlock()

	if step != models.StepReview {
		return nil, fmt.Errorf("service.Submit: %w", models.ErrTransitionNotPermitted)
	}
	if selected < 0 || selected >= len(addrs) {
		return nil, fmt.Errorf("service.Submit: %w", models.ErrNoAddressSelected)
	}

	items, err := s.carts.Items(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service.Submit: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("service.Submit: %w", models.ErrCartEmpty)
	}

	payload := BuildOrderPayload(addrs[selected], method)
	orderID, err := s.orders.CreateOrder(ctx, session, payload, idempotencyKey)
	if err != nil {
		// State remains at review; the user retries with the same key.
		return nil, fmt.Errorf("service.Submit: %w", err)
	}

	s.mu.Lock()
	delete(s.states, session.UserID)
	s.mu.Unlock()

	s.sendConfirmation(session, orderID, payload, pricing.QuoteCart(items, coupon))

	return &models.SubmitResponse{Status: "confirmed", OrderID: orderID}, nil
}

// BuildOrderPayload flattens the selected address into the upstream's order
// shape and maps the payment method to its display label.
func BuildOrderPayload(addr models.Address, method models.PaymentMethod) models.OrderPayload {
	line := addr.Street
	if addr.Apartment != "" {
		line += ", " + addr.Apartment
	}
	return models.OrderPayload{
		ShippingAddress: models.ShippingAddress{
			Name:       addr.Name,
			Phone:      addr.Phone,
			Address:    line,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		},
		PaymentMethod: models.PaymentLabel(method),
	}
}

// sendConfirmation dispatches the confirmation email without blocking the
// response; failures are logged and forgotten.
func (s *Service) sendConfirmation(session models.Session, orderID string, payload models.OrderPayload, quote models.Quote) {
	if s.emailer == nil || s.templates == nil || session.Email == "" {
		return
	}

	data := email.OrderConfirmationData{
		Name:          payload.ShippingAddress.Name,
		OrderID:       orderID,
		Total:         fmt.Sprintf("Rs %s", strings.TrimSuffix(fmt.Sprintf("%.2f", quote.Total), ".00")),
		PaymentMethod: payload.PaymentMethod,
		AddressLine:   payload.ShippingAddress.Address,
		City:          payload.ShippingAddress.City,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		html, err := s.templates.GenerateOrderConfirmationHTML(data)
		if err != nil {
			log.Printf("checkout: rendering confirmation email: %v", err)
			return
		}
		text := s.templates.GenerateOrderConfirmationText(data)
		if err := s.emailer.SendEmail(ctx, session.Email, "Your order is confirmed", text, html); err != nil {
			log.Printf("checkout: sending confirmation email: %v", err)
		}
	}()
}
