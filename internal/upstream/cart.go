package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"storefront-gateway/internal/models"
)

// cartEnvelope mirrors the upstream cart read shape: each line nests the
// populated product document under productId.
type cartEnvelope struct {
	Items []cartLine `json:"items"`
}

type cartLine struct {
	Product  cartProduct `json:"productId"`
	Quantity int         `json:"quantity"`
}

type cartProduct struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Thumbnail string  `json:"thumbnail"`
	InStock   *bool   `json:"inStock"`
}

// FetchCart reads the user's cart and flattens it into the view model.
// A missing inStock defaults to true, a missing image to the placeholder.
func (c *Client) FetchCart(ctx context.Context, session models.Session) ([]models.CartItem, error) {
	var envelope cartEnvelope
	err := c.do(ctx, http.MethodGet, "/api/cart", userQuery(session.UserID), nil, session.UpstreamToken, nil, &envelope)
	if err != nil {
		return nil, fmt.Errorf("upstream.FetchCart: %w", err)
	}

	items := make([]models.CartItem, 0, len(envelope.Items))
	for _, line := range envelope.Items {
		image := line.Product.Image
		if image == "" {
			image = line.Product.Thumbnail
		}
		if image == "" {
			image = models.PlaceholderImage
		}
		inStock := true
		if line.Product.InStock != nil {
			inStock = *line.Product.InStock
		}
		items = append(items, models.CartItem{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
			Image:    image,
			InStock:  inStock,
		})
	}
	return items, nil
}

// UpdateCartItem sets an item's quantity to the already-clamped value.
func (c *Client) UpdateCartItem(ctx context.Context, session models.Session, productID string, quantity int) error {
	body := map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	}
	err := c.do(ctx, http.MethodPut, "/api/cart/update", userQuery(session.UserID), nil, session.UpstreamToken, body, nil)
	if err != nil {
		return fmt.Errorf("upstream.UpdateCartItem: %w", err)
	}
	return nil
}

// RemoveCartItem deletes an item from the user's cart.
func (c *Client) RemoveCartItem(ctx context.Context, session models.Session, productID string) error {
	path := "/api/cart/remove/" + url.PathEscape(productID)
	err := c.do(ctx, http.MethodDelete, path, userQuery(session.UserID), nil, session.UpstreamToken, nil, nil)
	if err != nil {
		return fmt.Errorf("upstream.RemoveCartItem: %w", err)
	}
	return nil
}
