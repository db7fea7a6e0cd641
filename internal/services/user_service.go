package services

import (
	"context"
	"fmt"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/models"
)

// UserService wraps the user profile endpoints.
type UserService struct {
	client *apiclient.Client
}

// NewUserService creates a new user service over the shared client.
func NewUserService(client *apiclient.Client) UserServiceInterface {
	return &UserService{client: client}
}

// Get fetches a user profile by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := s.client.Get(ctx, routeUser(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes the account with the given ID. The server only honors this
// for the authenticated user's own account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, routeUser(id)); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
