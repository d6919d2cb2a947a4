package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront-gateway/internal/models"
)

// wireAddress mirrors the upstream address document.
type wireAddress struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	Street     string `json:"street"`
	Apartment  string `json:"apartment"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

func (w wireAddress) toModel() models.Address {
	addr := models.Address{
		ID:         w.ID,
		Name:       w.Name,
		Phone:      w.Phone,
		Type:       w.Type,
		Street:     w.Street,
		Apartment:  w.Apartment,
		City:       w.City,
		State:      w.State,
		PostalCode: w.PostalCode,
		Country:    w.Country,
		IsDefault:  w.IsDefault,
	}
	if addr.Type == "" {
		addr.Type = "home"
	}
	if addr.Name == "" {
		addr.Name = "Home Address"
	}
	return addr
}

// ListAddresses fetches the user's saved addresses. The upstream answers with
// either a bare array or an {addresses: [...]} wrapper; both are accepted.
func (c *Client) ListAddresses(ctx context.Context, session models.Session) ([]models.Address, error) {
	var raw json.RawMessage
	path := "/api/users/addresses/" + url.PathEscape(session.UserID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, session.UpstreamToken, nil, &raw); err != nil {
		return nil, fmt.Errorf("upstream.ListAddresses: %w", err)
	}

	var list []wireAddress
	if err := json.Unmarshal(raw, &list); err != nil {
		var wrapped struct {
			Addresses []wireAddress `json:"addresses"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("upstream.ListAddresses: %w: unexpected address payload", models.ErrUpstreamUnavailable)
		}
		list = wrapped.Addresses
	}

	addresses := make([]models.Address, 0, len(list))
	for _, w := range list {
		addresses = append(addresses, w.toModel())
	}
	return addresses, nil
}

// AddAddress creates a new address for the user.
func (c *Client) AddAddress(ctx context.Context, session models.Session, req models.AddAddressRequest) error {
	body := map[string]interface{}{
		"name":       req.Name,
		"phone":      req.Phone,
		"type":       req.Type,
		"street":     req.Street,
		"city":       req.City,
		"state":      req.State,
		"postalCode": req.PostalCode,
		"country":    req.Country,
		"isDefault":  req.IsDefault,
	}
	if req.Apartment != "" {
		body["apartment"] = req.Apartment
	}

	path := "/api/users/addresses/" + url.PathEscape(session.UserID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, session.UpstreamToken, body, nil); err != nil {
		return fmt.Errorf("upstream.AddAddress: %w", err)
	}
	return nil
}
