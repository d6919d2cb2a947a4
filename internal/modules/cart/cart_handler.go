package cart

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/pricing"
	"storefront-gateway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the cart.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new cart handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetCart refetches the cart and returns it with a price quote for the
// optional coupon query parameter.
func (h *Handler) GetCart(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	items, err := h.svc.FetchCart(c.Request().Context(), session)
	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			return utils.HandleServiceError(c, err)
		}
		// The cart view renders empty on fetch failure; keep the message generic.
		c.Logger().Error("Handler.GetCart: ", err)
		return utils.RespondWithError(c, http.StatusBadGateway, "failed to fetch cart")
	}

	return utils.RespondWithJSON(c, http.StatusOK, models.CartResponse{
		Items: items,
		Quote: pricing.QuoteCart(items, c.QueryParam("coupon")),
	})
}

// UpdateQuantity adjusts one item's quantity by a signed delta.
func (h *Handler) UpdateQuantity(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	items, err := h.svc.UpdateQuantity(c.Request().Context(), session, c.Param("itemId"), req.Delta)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, models.CartResponse{
		Items: items,
		Quote: pricing.QuoteCart(items, c.QueryParam("coupon")),
	})
}

// RemoveItem deletes one item from the cart.
func (h *Handler) RemoveItem(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	items, err := h.svc.RemoveItem(c.Request().Context(), session, c.Param("itemId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, models.CartResponse{
		Items: items,
		Quote: pricing.QuoteCart(items, c.QueryParam("coupon")),
	})
}
