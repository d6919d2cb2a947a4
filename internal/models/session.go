package models

import "github.com/golang-jwt/jwt/v5"

// Session identifies the caller toward the upstream API: the user id plus the
// opaque bearer token the upstream issued at login. It is carried inside the
// gateway's own JWT and handed explicitly to every service method, so no
// operation ever reads identity from ambient state.
type Session struct {
	UserID        string
	Email         string
	UpstreamToken string
}

// SessionClaims are the custom claims embedded in the gateway session JWT.
type SessionClaims struct {
	UserID        string `json:"userID"`
	Email         string `json:"email,omitempty"`
	UpstreamToken string `json:"upstreamToken"`
	jwt.RegisteredClaims
}

// Session converts parsed claims back into the explicit session value.
func (c *SessionClaims) Session() Session {
	return Session{UserID: c.UserID, Email: c.Email, UpstreamToken: c.UpstreamToken}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse is returned after a successful login or signup. The access
// token is the gateway session JWT; the client stores it and sends it as a
// bearer token on every protected call.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
}
