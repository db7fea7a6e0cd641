package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User represents a registered account. The JSON field names follow the
// camelCase wire contract used by every API endpoint.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"lastName"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Events        []Event        `gorm:"foreignKey:CreatedByID" json:"-"`
	Attendances   []Attendance   `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) TableName() string {
	return "users"
}

// FullName returns the display name used by the CLI and logs.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsValidEmail reports whether the given address has a plausible email shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
