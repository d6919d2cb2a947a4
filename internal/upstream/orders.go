package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront-gateway/internal/models"
)

// wireOrder mirrors one order document from the upstream history endpoint.
type wireOrder struct {
	ID    string `json:"_id"`
	Items []struct {
		Product *struct {
			ID    string  `json:"_id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"productId"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	} `json:"items"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentStatus   string  `json:"paymentStatus"`
	CreatedAt       string  `json:"createdAt"`
	ShippingAddress struct {
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"shippingAddress"`
}

// createdOrder is the relevant slice of the order creation response.
type createdOrder struct {
	ID    string `json:"_id"`
	Order *struct {
		ID string `json:"_id"`
	} `json:"order"`
}

// CreateOrder posts the assembled order payload. The idempotency key makes a
// manual retry after a transport failure safe against duplicate orders on
// backends that honor the header; others behave as before.
func (c *Client) CreateOrder(ctx context.Context, session models.Session, payload models.OrderPayload, idempotencyKey string) (string, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	var created createdOrder
	err := c.do(ctx, http.MethodPost, "/api/orders", userQuery(session.UserID), header, session.UpstreamToken, payload, &created)
	if err != nil {
		return "", fmt.Errorf("upstream.CreateOrder: %w", err)
	}

	orderID := created.ID
	if orderID == "" && created.Order != nil {
		orderID = created.Order.ID
	}
	return orderID, nil
}

// ListOrders returns the user's order history, newest first as the upstream
// sends it.
func (c *Client) ListOrders(ctx context.Context, session models.Session) ([]models.Order, error) {
	var wire []wireOrder
	err := c.do(ctx, http.MethodGet, "/api/orders", userQuery(session.UserID), nil, session.UpstreamToken, nil, &wire)
	if err != nil {
		return nil, fmt.Errorf("upstream.ListOrders: %w", err)
	}

	orders := make([]models.Order, 0, len(wire))
	for _, w := range wire {
		order := models.Order{
			ID:            w.ID,
			TotalAmount:   w.TotalAmount,
			Status:        w.Status,
			PaymentMethod: w.PaymentMethod,
			PaymentStatus: w.PaymentStatus,
			ShippingAddress: models.ShippingAddress{
				Name:       w.ShippingAddress.Name,
				Phone:      w.ShippingAddress.Phone,
				Address:    w.ShippingAddress.Address,
				City:       w.ShippingAddress.City,
				State:      w.ShippingAddress.State,
				PostalCode: w.ShippingAddress.PostalCode,
				Country:    w.ShippingAddress.Country,
			},
		}
		if ts, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			order.CreatedAt = ts
		}
		for _, line := range w.Items {
			item := models.OrderItem{Quantity: line.Quantity, Price: line.Price}
			if line.Product != nil {
				item.ProductID = line.Product.ID
				item.Name = line.Product.Name
				if item.Price == 0 {
					item.Price = line.Product.Price
				}
			}
			order.Items = append(order.Items, item)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CancelOrder asks the upstream to cancel a placed order.
func (c *Client) CancelOrder(ctx context.Context, session models.Session, orderID string) error {
	path := "/api/orders/cancel/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, session.UpstreamToken, nil, nil); err != nil {
		return fmt.Errorf("upstream.CancelOrder: %w", err)
	}
	return nil
}
