package orders

import (
	"net/http"

	"storefront-gateway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for order history.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new order history handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ListOrders returns the caller's order history.
func (h *Handler) ListOrders(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	orders, err := h.svc.ListOrders(c.Request().Context(), session)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, orders)
}

// CancelOrder cancels one placed order.
func (h *Handler) CancelOrder(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	if err := h.svc.CancelOrder(c.Request().Context(), session, c.Param("orderId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"status": "cancelled"})
}
