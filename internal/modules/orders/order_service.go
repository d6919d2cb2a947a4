package orders

import (
	"context"
	"fmt"

	"storefront-gateway/internal/models"
)

// RepositoryInterface is the slice of the upstream API the history module uses.
type RepositoryInterface interface {
	ListOrders(ctx context.Context, session models.Session) ([]models.Order, error)
	CancelOrder(ctx context.Context, session models.Session, orderID string) error
}

// ServiceInterface defines the order history logic.
type ServiceInterface interface {
	ListOrders(ctx context.Context, session models.Session) ([]models.Order, error)
	CancelOrder(ctx context.Context, session models.Session, orderID string) error
}

// Service reads placed orders back from the upstream. Orders are write-once
// from the checkout's perspective; this module only views and cancels them.
type Service struct {
	repo RepositoryInterface
}

// NewService creates the order history service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// ListOrders returns the user's order history.
func (s *Service) ListOrders(ctx context.Context, session models.Session) ([]models.Order, error) {
	orders, err := s.repo.ListOrders(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("service.ListOrders: %w", err)
	}
	return orders, nil
}

// CancelOrder forwards a cancellation. The upstream decides whether the
// order's status still allows it; its message is surfaced on rejection.
func (s *Service) CancelOrder(ctx context.Context, session models.Session, orderID string) error {
	if err := s.repo.CancelOrder(ctx, session, orderID); err != nil {
		return fmt.Errorf("service.CancelOrder: %w", err)
	}
	return nil
}
