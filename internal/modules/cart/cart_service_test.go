package cart

import (
	"context"
	"errors"
	"testing"

	"storefront-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository stands in for the upstream client.
type fakeRepository struct {
	fetchFn     func() ([]models.CartItem, error)
	updateErr   error
	removeErr   error
	fetchCalls  int
	updateCalls int
	removeCalls int
	lastUpdate  struct {
		productID string
		quantity  int
	}
}

func (f *fakeRepository) FetchCart(context.Context, models.Session) ([]models.CartItem, error) {
	f.fetchCalls++
	if f.fetchFn != nil {
		return f.fetchFn()
	}
	return nil, nil
}

func (f *fakeRepository) UpdateCartItem(_ context.Context, _ models.Session, productID string, quantity int) error {
	f.updateCalls++
	f.lastUpdate.productID = productID
	f.lastUpdate.quantity = quantity
	return f.updateErr
}

func (f *fakeRepository) RemoveCartItem(context.Context, models.Session, string) error {
	f.removeCalls++
	return f.removeErr
}

var testSession = models.Session{UserID: "u1", UpstreamToken: "tok"}

func seededService(t *testing.T, repo *fakeRepository, items []models.CartItem) *Service {
	t.Helper()
	repo.fetchFn = func() ([]models.CartItem, error) {
		copied := make([]models.CartItem, len(items))
		copy(copied, items)
		return copied, nil
	}
	svc := NewService(repo)
	_, err := svc.FetchCart(context.Background(), testSession)
	require.NoError(t, err)
	return svc
}

func TestQuantityNeverDropsBelowOne(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Name: "Sneakers", Price: 500, Quantity: 2, InStock: true},
	})

	// However many decrements arrive, the displayed quantity floors at 1.
	for range 10 {
		items, err := svc.UpdateQuantity(context.Background(), testSession, "p1", -1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, items[0].Quantity, 1)
	}

	items, err := svc.Items(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, repo.lastUpdate.quantity, "upstream receives the clamped value")
}

func TestUpdateQuantityClampsLargeNegativeDelta(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 3, InStock: true},
	})

	items, err := svc.UpdateQuantity(context.Background(), testSession, "p1", -100)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantityRollsBackOnUpstreamFailure(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 2, InStock: true},
		{ID: "p2", Price: 1000, Quantity: 1, InStock: true},
	})
	before, err := svc.Items(context.Background(), testSession)
	require.NoError(t, err)

	repo.updateErr = errors.New("network down")
	_, err = svc.UpdateQuantity(context.Background(), testSession, "p1", 1)
	require.Error(t, err)

	after, err := svc.Items(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, before, after, "local cart equals the pre-operation state")
}

func TestRemoveItemOptimisticallyAndRollsBack(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 2, InStock: true},
		{ID: "p2", Price: 1000, Quantity: 1, InStock: true},
	})

	items, err := svc.RemoveItem(context.Background(), testSession, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	// Now fail the upstream delete and expect the full snapshot back.
	before, err := svc.Items(context.Background(), testSession)
	require.NoError(t, err)
	repo.removeErr = errors.New("network down")

	_, err = svc.RemoveItem(context.Background(), testSession, "p2")
	require.Error(t, err)

	after, err := svc.Items(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateUnknownItemIsNotFound(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 2, InStock: true},
	})

	_, err := svc.UpdateQuantity(context.Background(), testSession, "missing", 1)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, repo.updateCalls, "no upstream call for an unknown item")
}

func TestFetchCartReplacesLocalState(t *testing.T) {
	repo := &fakeRepository{}
	svc := seededService(t, repo, []models.CartItem{
		{ID: "p1", Price: 500, Quantity: 2, InStock: true},
	})

	// Mutate locally, then refetch: server state wins.
	_, err := svc.UpdateQuantity(context.Background(), testSession, "p1", 5)
	require.NoError(t, err)

	items, err := svc.FetchCart(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, repo.fetchCalls, "every fetch goes to the upstream, no caching")
}

func TestFetchCartPropagatesSessionExpiry(t *testing.T) {
	repo := &fakeRepository{
		fetchFn: func() ([]models.CartItem, error) { return nil, models.ErrSessionExpired },
	}
	svc := NewService(repo)

	_, err := svc.FetchCart(context.Background(), testSession)
	require.ErrorIs(t, err, models.ErrSessionExpired)
}
