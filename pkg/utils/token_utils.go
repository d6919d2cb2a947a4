package utils

import (
	"fmt"
	"time"

	"storefront-gateway/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionContextKey is where the auth middleware stores the parsed session.
const SessionContextKey = "session"

// GenerateSessionToken mints the gateway session JWT wrapping the user id and
// the upstream bearer token.
func GenerateSessionToken(secret string, session models.Session, ttl time.Duration) (string, error) {
	claims := &models.SessionClaims{
		UserID:        session.UserID,
		Email:         session.Email,
		UpstreamToken: session.UpstreamToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("utils.GenerateSessionToken: %w", err)
	}
	return signed, nil
}

// ExtractSession returns the session the auth middleware placed in the
// request context. Reaching a protected handler without one is a programming
// error in the route table, reported as the not-authenticated condition.
func ExtractSession(c echo.Context) (models.Session, error) {
	session, ok := c.Get(SessionContextKey).(models.Session)
	if !ok || session.UserID == "" || session.UpstreamToken == "" {
		return models.Session{}, models.ErrNotAuthenticated
	}
	return session, nil
}
