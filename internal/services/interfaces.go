package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
)

// AuthServiceInterface defines the authentication endpoints consumed by the
// session manager.
type AuthServiceInterface interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// EventServiceInterface defines event CRUD and discovery operations.
type EventServiceInterface interface {
	List(ctx context.Context, params models.EventListParams) (*dto.PageResponse[models.Event], error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Similar(ctx context.Context, id string) ([]models.Event, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// CategoryServiceInterface defines category listing and creation.
type CategoryServiceInterface interface {
	List(ctx context.Context, params models.CategoryListParams) (*dto.PageResponse[models.Category], error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
}

// AttendanceServiceInterface defines attendance operations.
type AttendanceServiceInterface interface {
	List(ctx context.Context, params models.AttendanceListParams) ([]models.Attendance, error)
	Get(ctx context.Context, id string) (*models.Attendance, error)
	ByEvent(ctx context.Context, eventID string) ([]models.Attendance, error)
	ByUser(ctx context.Context, userID string) ([]models.Attendance, error)
	Create(ctx context.Context, req dto.CreateAttendanceRequest) (*models.Attendance, error)
	Delete(ctx context.Context, id string) error
}

// UserServiceInterface defines user profile operations beyond the session's
// own /user/me lookup.
type UserServiceInterface interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenServiceInterface defines JWT generation and validation for the API
// server.
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password hashing and verification.
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}
