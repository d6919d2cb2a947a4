package middleware

import (
	"errors"
	"net/http"

	"storefront-gateway/internal/models"
	"storefront-gateway/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionGate configures Echo's JWT middleware as the session gate: every
// protected operation requires a valid session token before its handler runs,
// so no upstream call is ever issued for an unauthenticated request. This is
// a hard precondition, not a transient failure; the client reacts to the 401
// by redirecting to login.
func SessionGate(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		// NewClaimsFunc tells the middleware which claims type to parse into.
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.SessionClaims)
		},
		SigningKey: []byte(jwtSecretKey),

		// SuccessHandler turns the parsed claims into the explicit session
		// value every service method receives as an argument.
		SuccessHandler: func(c echo.Context) {
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.SessionClaims)
			c.Set(utils.SessionContextKey, claims.Session())
		},

		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Message: models.ErrSessionExpired.Error(),
					Code:    "session_expired",
				})
			}
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: models.ErrNotAuthenticated.Error(),
				Code:    "not_authenticated",
			})
		},
	}
	return echojwt.WithConfig(config)
}
