package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront-gateway/internal/models"
)

// AuthResult is what the upstream auth endpoints hand back: its opaque bearer
// token plus the user document.
type AuthResult struct {
	Token string
	User  AuthUser
}

// AuthUser is the user identity slice of the auth response.
type AuthUser struct {
	ID    string
	Name  string
	Email string
}

// authResponse mirrors the upstream auth response body.
type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for an upstream token. A 401 or 400 from the
// auth endpoint means bad credentials rather than an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Signup registers a new account and returns the same shape as Login.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, path, nil, nil, "", body, &resp)
	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			return nil, models.ErrInvalidCredentials
		}
		var upstreamErr *models.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", models.ErrInvalidCredentials, upstreamErr.Message)
		}
		return nil, fmt.Errorf("upstream.authenticate: %w", err)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, fmt.Errorf("upstream.authenticate: %w: incomplete auth response", models.ErrUpstreamUnavailable)
	}

	return &AuthResult{
		Token: resp.Token,
		User: AuthUser{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
	}, nil
}
