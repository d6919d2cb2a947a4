package checkout

import (
	"context"
	"testing"

	"storefront-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCarts struct {
	items []models.CartItem
	err   error
}

func (f *fakeCarts) Items(context.Context, models.Session) ([]models.CartItem, error) {
	return f.items, f.err
}

type fakeAddresses struct {
	addresses []models.Address
	index     int
}

func (f *fakeAddresses) ListAddresses(context.Context, models.Session) ([]models.Address, int) {
	return f.addresses, f.index
}

type fakeOrders struct {
	err         error
	calls       int
	lastPayload models.OrderPayload
	lastKey     string
}

func (f *fakeOrders) CreateOrder(_ context.Context, _ models.Session, payload models.OrderPayload, key string) (string, error) {
	f.calls++
	f.lastPayload = payload
	f.lastKey = key
	if f.err != nil {
		return "", f.err
	}
	return "order-1", nil
}

var testSession = models.Session{UserID: "u1", UpstreamToken: "tok"}

var testAddress = models.Address{
	ID:         "a1",
	Name:       "Kamran Ali",
	Phone:      "03001234567",
	Street:     "House #123, Street 45",
	Apartment:  "Flat 2B",
	City:       "Lahore",
	State:      "Punjab",
	PostalCode: "54000",
	Country:    "Pakistan",
	IsDefault:  true,
}

var testItems = []models.CartItem{
	{ID: "p1", Price: 500, Quantity: 2, InStock: true},
	{ID: "p2", Price: 1000, Quantity: 1, InStock: true},
}

func newTestService(carts *fakeCarts, addrs *fakeAddresses, orders *fakeOrders) *Service {
	return NewService(orders, carts, addrs, nil, nil)
}

func TestAdvanceBlockedWithoutAddresses(t *testing.T) {
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: nil, index: -1},
		&fakeOrders{},
	)

	_, err := svc.Advance(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrNoAddressSelected)

	view, err := svc.View(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepAddress, view.State.Step, "machine stays at address")
}

func TestLinearAdvanceAndBack(t *testing.T) {
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		&fakeOrders{},
	)

	st, err := svc.Advance(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, st.Step)

	// payment -> review is unconditional
	st, err = svc.Advance(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, st.Step)

	// forward past review is not in the table
	_, err = svc.Advance(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrTransitionNotPermitted)

	// backward is always permitted
	st, err = svc.Back(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, st.Step)

	st, err = svc.Back(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepAddress, st.Step)

	_, err = svc.Back(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrTransitionNotPermitted)
}

func TestSelectAddressValidatesIndex(t *testing.T) {
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		&fakeOrders{},
	)

	_, err := svc.SelectAddress(context.Background(), testSession, 3)
	require.ErrorIs(t, err, models.ErrNoAddressSelected)

	st, err := svc.SelectAddress(context.Background(), testSession, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, st.SelectedAddressIndex)
}

func TestSubmitRequiresReviewStep(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		orders,
	)

	_, err := svc.Submit(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrTransitionNotPermitted)
	assert.Zero(t, orders.calls, "precondition failures never reach the upstream")
}

func TestSubmitRequiresNonEmptyCart(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(
		&fakeCarts{items: nil},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		orders,
	)
	advanceToReview(t, svc)

	_, err := svc.Submit(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrCartEmpty)
	assert.Zero(t, orders.calls)
}

func TestSubmitAssemblesPayload(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		orders,
	)
	advanceToReview(t, svc)

	_, err := svc.SelectPayment(context.Background(), testSession, models.PaymentCOD)
	require.NoError(t, err)

	resp, err := svc.Submit(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "order-1", resp.OrderID)

	payload := orders.lastPayload
	assert.Equal(t, "House #123, Street 45, Flat 2B", payload.ShippingAddress.Address,
		"street and apartment flatten into one line")
	assert.Equal(t, "Lahore", payload.ShippingAddress.City)
	assert.Equal(t, "Cash on Delivery", payload.PaymentMethod)
	assert.NotEmpty(t, orders.lastKey, "submission carries an idempotency key")
}

func TestSubmitFailureStaysOnReviewAndReusesKey(t *testing.T) {
	orders := &fakeOrders{err: &models.UpstreamError{StatusCode: 500, Message: "payment declined"}}
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		orders,
	)
	advanceToReview(t, svc)

	_, err := svc.Submit(context.Background(), testSession)
	var upstreamErr *models.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "payment declined", upstreamErr.Message)

	view, err := svc.View(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepReview, view.State.Step, "user stays on review to retry")

	firstKey := orders.lastKey
	orders.err = nil
	_, err = svc.Submit(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, firstKey, orders.lastKey, "a manual retry reuses the same key")
}

func TestSubmitSuccessDiscardsState(t *testing.T) {
	orders := &fakeOrders{}
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		orders,
	)
	advanceToReview(t, svc)

	_, err := svc.Submit(context.Background(), testSession)
	require.NoError(t, err)

	view, err := svc.View(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.StepAddress, view.State.Step, "a fresh checkout starts over")
}

func TestApplyCouponRepricesView(t *testing.T) {
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{testAddress}, index: 0},
		&fakeOrders{},
	)

	view, err := svc.ApplyCoupon(context.Background(), testSession, "welcome50")
	require.NoError(t, err)

	assert.Equal(t, float64(2000), view.Quote.Subtotal)
	assert.Equal(t, float64(500), view.Quote.Discount)
	assert.Equal(t, float64(0), view.Quote.Delivery)
	assert.Equal(t, float64(1500), view.Quote.Total)

	// Applying the same code again changes nothing.
	again, err := svc.ApplyCoupon(context.Background(), testSession, "WELCOME50")
	require.NoError(t, err)
	assert.Equal(t, view.Quote, again.Quote)
}

func TestViewPreselectsDefaultAddress(t *testing.T) {
	svc := newTestService(
		&fakeCarts{items: testItems},
		&fakeAddresses{addresses: []models.Address{{ID: "a0"}, testAddress}, index: 1},
		&fakeOrders{},
	)

	view, err := svc.View(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, view.State.SelectedAddressIndex)
}

func advanceToReview(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Advance(context.Background(), testSession)
	require.NoError(t, err)
	_, err = svc.Advance(context.Background(), testSession)
	require.NoError(t, err)
}
