package checkout

import (
	"net/http"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the checkout flow.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new checkout handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetCheckout returns the full checkout view: state, addresses, cart, quote.
func (h *Handler) GetCheckout(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	view, err := h.svc.View(c.Request().Context(), session)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, view)
}

// Advance moves the step machine forward one step.
func (h *Handler) Advance(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	state, err := h.svc.Advance(c.Request().Context(), session)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, state)
}

// Back moves the step machine backward one step.
func (h *Handler) Back(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	state, err := h.svc.Back(c.Request().Context(), session)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, state)
}

// SelectAddress records the chosen delivery address index.
func (h *Handler) SelectAddress(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.SelectAddressRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	state, err := h.svc.SelectAddress(c.Request().Context(), session, req.Index)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, state)
}

// SelectPayment records the chosen payment method.
func (h *Handler) SelectPayment(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.SelectPaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	state, err := h.svc.SelectPayment(c.Request().Context(), session, req.Method)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, state)
}

// ApplyCoupon stores the coupon code and returns the repriced view.
func (h *Handler) ApplyCoupon(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}

	view, err := h.svc.ApplyCoupon(c.Request().Context(), session, req.Code)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, view)
}

// Submit places the order. On failure the user stays on the review step and
// the upstream's message is surfaced prominently.
func (h *Handler) Submit(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	resp, err := h.svc.Submit(c.Request().Context(), session)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, resp)
}
