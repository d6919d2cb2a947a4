package session

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/upstream"
	"storefront-gateway/pkg/utils"
)

// AuthClientInterface is the slice of the upstream API the session module uses.
type AuthClientInterface interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (*upstream.AuthResult, error)
}

// ServiceInterface defines the session business logic.
type ServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
}

// Service exchanges credentials with the upstream auth service and wraps the
// resulting identity into the gateway's own session token. Token issuance
// itself is upstream-owned; this service only packages what it gets back.
type Service struct {
	auth       AuthClientInterface
	jwtSecret  string
	sessionTTL time.Duration
}

// NewService creates the session service.
func NewService(auth AuthClientInterface, jwtSecret string, sessionTTL time.Duration) *Service {
	return &Service{
		auth:       auth,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

// Login authenticates against the upstream and mints the session token.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	result, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("service.Login: %w", err)
	}
	return s.mintSession(result)
}

// Signup registers a new account upstream and logs it straight in.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	result, err := s.auth.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("service.Signup: %w", err)
	}
	return s.mintSession(result)
}

func (s *Service) mintSession(result *upstream.AuthResult) (*models.AuthResponse, error) {
	session := models.Session{
		UserID:        result.User.ID,
		Email:         result.User.Email,
		UpstreamToken: result.Token,
	}
	token, err := utils.GenerateSessionToken(s.jwtSecret, session, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("service.mintSession: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: token,
		UserID:      result.User.ID,
		Name:        result.User.Name,
		Email:       result.User.Email,
	}, nil
}
