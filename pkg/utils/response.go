package utils

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON success response.
func RespondWithJSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}

// RespondWithError writes a JSON error body with the given message.
func RespondWithError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{Message: message})
}

// RespondWithErrorCode writes a JSON error body carrying a machine-readable
// code the UI can act on (e.g. session_expired triggers the login redirect).
func RespondWithErrorCode(c echo.Context, status int, message, code string) error {
	return c.JSON(status, models.ErrorResponse{Message: message, Code: code})
}

// HandleServiceError maps service-layer errors to HTTP responses. Every
// failure is terminal at this boundary; nothing propagates further up.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNotAuthenticated):
		return RespondWithErrorCode(c, http.StatusUnauthorized, err.Error(), "not_authenticated")
	case errors.Is(err, models.ErrSessionExpired):
		return RespondWithErrorCode(c, http.StatusUnauthorized, err.Error(), "session_expired")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrCartEmpty),
		errors.Is(err, models.ErrNoAddressSelected),
		errors.Is(err, models.ErrTransitionNotPermitted):
		return RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return RespondWithError(c, http.StatusBadGateway, err.Error())
	}

	// Upstream rejections surface their message verbatim when one was present.
	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) {
		return RespondWithError(c, http.StatusBadGateway, upstreamErr.Error())
	}

	c.Logger().Error(err)
	return RespondWithError(c, http.StatusInternalServerError, "something went wrong")
}
