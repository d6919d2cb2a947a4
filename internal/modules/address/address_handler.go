package address

import (
	"net/http"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for saved addresses.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new address handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ListAddresses returns the saved addresses with the preselected index.
func (h *Handler) ListAddresses(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	addresses, index := h.svc.ListAddresses(c.Request().Context(), session)
	return utils.RespondWithJSON(c, http.StatusOK, models.AddressListResponse{
		Addresses:     addresses,
		SelectedIndex: index,
	})
}

// AddAddress validates the new address client-side; a validation failure
// names the missing fields and never reaches the upstream.
func (h *Handler) AddAddress(c echo.Context) error {
	session, err := utils.ExtractSession(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.AddAddressRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	addresses, index, err := h.svc.AddAddress(c.Request().Context(), session, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, models.AddressListResponse{
		Addresses:     addresses,
		SelectedIndex: index,
	})
}
