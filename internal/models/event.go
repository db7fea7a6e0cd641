package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the central domain entity: something that happens at a time and a
// place. Latitude/longitude are optional; events without coordinates simply
// have a free-text location.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null;index" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	StartDate   time.Time  `gorm:"not null;index" json:"startDate"`
	EndDate     time.Time  `gorm:"not null" json:"endDate"`
	Location    string     `gorm:"type:varchar(255);not null" json:"location"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`

	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedBy *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Event) TableName() string {
	return "events"
}

// IsUpcoming reports whether the event has not started yet.
func (e *Event) IsUpcoming() bool {
	return e.StartDate.After(time.Now())
}

// Duration returns the length of the event's time window.
func (e *Event) Duration() time.Duration {
	return e.EndDate.Sub(e.StartDate)
}
