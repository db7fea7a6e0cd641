package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
)

// AuthService wraps the authentication endpoints.
type AuthService struct {
	client *apiclient.Client
	logger *slog.Logger
}

// NewAuthService creates a new authentication service over the shared client.
func NewAuthService(client *apiclient.Client, logger *slog.Logger) AuthServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		client: client,
		logger: logger,
	}
}

// Login authenticates with email and password, returning the user and a
// fresh token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := s.client.Post(ctx, routeAuthLogin, req, &out); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &out, nil
}

// Register creates a new account, returning the user and a token pair.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := s.client.Post(ctx, routeAuthRegister, req, &out); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new access token. Most callers
// never use this directly; the client pipeline refreshes transparently.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	var out dto.RefreshResponse
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := s.client.Post(ctx, routeAuthRefresh, req, &out); err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return &out, nil
}

// GetCurrentUser fetches the authenticated user's profile.
func (s *AuthService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.client.Get(ctx, routeUserMe, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &out, nil
}

// Logout notifies the server. Failures are logged and swallowed: local
// session invalidation must succeed regardless of server reachability.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Post(ctx, routeAuthLogout, nil, nil); err != nil {
		s.logger.Warn("server logout failed", "error", err)
	}
	return nil
}
