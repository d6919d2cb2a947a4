package session

import (
	"net/http"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new session handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// Signup registers a new account and returns a session token.
func (h *Handler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.Signup(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, resp)
}

// Logout acknowledges the logout; the session token lives client-side, so
// destroying it is the client discarding the token.
func (h *Handler) Logout(c echo.Context) error {
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"status": "logged_out"})
}
