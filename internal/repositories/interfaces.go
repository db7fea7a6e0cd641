package repositories

import (
	"github.com/google/uuid"

	"github.com/ross2p/ems-app/internal/models"
)

// UserRepositoryInterface defines database operations for users
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// RefreshTokenRepositoryInterface defines database operations for refresh tokens
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() error
}

// EventRepositoryInterface defines database operations for events
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	GetByID(id uuid.UUID) (*models.Event, error)
	List(params models.EventListParams) ([]models.Event, int64, error)
	Similar(event *models.Event, limit int) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uuid.UUID) error
}

// CategoryRepositoryInterface defines database operations for categories
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	List(params models.CategoryListParams) ([]models.Category, int64, error)
}

// AttendanceRepositoryInterface defines database operations for attendance records
type AttendanceRepositoryInterface interface {
	Create(attendance *models.Attendance) error
	GetByID(id uuid.UUID) (*models.Attendance, error)
	List(params models.AttendanceListParams) ([]models.Attendance, error)
	GetByUserAndEvent(userID, eventID uuid.UUID) (*models.Attendance, error)
	Delete(id uuid.UUID) error
}
