package cart

import (
	"context"
	"fmt"
	"sync"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/optimistic"
)

// RepositoryInterface is the slice of the upstream API the cart module uses.
type RepositoryInterface interface {
	FetchCart(ctx context.Context, session models.Session) ([]models.CartItem, error)
	UpdateCartItem(ctx context.Context, session models.Session, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, session models.Session, productID string) error
}

// ServiceInterface defines the cart business logic.
type ServiceInterface interface {
	FetchCart(ctx context.Context, session models.Session) ([]models.CartItem, error)
	Items(ctx context.Context, session models.Session) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, session models.Session, itemID string, delta int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, session models.Session, itemID string) ([]models.CartItem, error)
}

// Service keeps each user's last-fetched cart as local state and runs the
// optimistic mutations against it. The store mirrors what the browser held in
// component state; it is rebuilt from the upstream on every full fetch.
type Service struct {
	repo  RepositoryInterface
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

// NewService creates the cart service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{
		repo:  repo,
		carts: make(map[string][]models.CartItem),
	}
}

// FetchCart always refetches from the upstream and replaces the local state.
// There is no caching layer between renders.
func (s *Service) FetchCart(ctx context.Context, session models.Session) ([]models.CartItem, error) {
	items, err := s.repo.FetchCart(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service.FetchCart: %w", err)
	}

	s.mu.Lock()
	s.carts[session.UserID] = items
	s.mu.Unlock()

	return s.snapshot(session.UserID), nil
}

// Items returns the current local cart, fetching once when no state exists yet.
func (s *Service) Items(ctx context.Context, session models.Session) ([]models.CartItem, error) {
	s.mu.RLock()
	_, ok := s.carts[session.UserID]
	s.mu.RUnlock()
	if !ok {
		return s.FetchCart(ctx, session)
	}
	return s.snapshot(session.UserID), nil
}

// UpdateQuantity adjusts an item by delta, clamped so the quantity never
// drops below 1. The local state changes first; a failed upstream confirm
// restores the exact pre-mutation snapshot.
//
// Two rapid updates on the same item are not serialized against the
// upstream; the last response wins, which can transiently desync local and
// server state. Known limitation inherited from the storefront.
func (s *Service) UpdateQuantity(ctx context.Context, session models.Session, itemID string, delta int) ([]models.CartItem, error) {
	items, err := s.Items(ctx, session)
	if err != nil {
		return nil, err
	}

	var newQuantity int
	found := false
	for _, item := range items {
		if item.ID == itemID {
			newQuantity = max(1, item.Quantity+delta)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("service.UpdateQuantity: %w", models.ErrNotFound)
	}

	err = optimistic.Apply(
		func() []models.CartItem { return s.snapshot(session.UserID) },
		func() {
			s.mutate(session.UserID, func(items []models.CartItem) []models.CartItem {
				for i := range items {
					if items[i].ID == itemID {
						items[i].Quantity = newQuantity
					}
				}
				return items
			})
		},
		func() error { return s.repo.UpdateCartItem(ctx, session, itemID, newQuantity) },
		func(prev []models.CartItem) { s.restore(session.UserID, prev) },
	)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateQuantity: %w", err)
	}

	return s.snapshot(session.UserID), nil
}

// RemoveItem filters the item out locally, then confirms the delete upstream,
// restoring the full pre-removal snapshot on failure.
func (s *Service) RemoveItem(ctx context.Context, session models.Session, itemID string) ([]models.CartItem, error) {
	items, err := s.Items(ctx, session)
	if err != nil {
		return nil, err
	}

	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("service.RemoveItem: %w", models.ErrNotFound)
	}

	err = optimistic.Apply(
		func() []models.CartItem { return s.snapshot(session.UserID) },
		func() {
			s.mutate(session.UserID, func(items []models.CartItem) []models.CartItem {
				kept := items[:0]
				for _, item := range items {
					if item.ID != itemID {
						kept = append(kept, item)
					}
				}
				return kept
			})
		},
		func() error { return s.repo.RemoveCartItem(ctx, session, itemID) },
		func(prev []models.CartItem) { s.restore(session.UserID, prev) },
	)
	if err != nil {
		return nil, fmt.Errorf("service.RemoveItem: %w", err)
	}

	return s.snapshot(session.UserID), nil
}

// snapshot copies the user's cart so callers can never alias the stored slice.
func (s *Service) snapshot(userID string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.carts[userID]
	items := make([]models.CartItem, len(stored))
	copy(items, stored)
	return items
}

func (s *Service) mutate(userID string, fn func([]models.CartItem) []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = fn(s.carts[userID])
}

func (s *Service) restore(userID string, prev []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = prev
}
