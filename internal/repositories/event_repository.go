package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ross2p/ems-app/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository handles database operations for events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepositoryInterface {
	return &EventRepository{
		db: db,
	}
}

// Create creates a new event in the database
func (r *EventRepository) Create(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by its ID with related records preloaded
func (r *EventRepository) GetByID(id uuid.UUID) (*models.Event, error) {
	var event models.Event

	err := r.db.Preload("Category").Preload("CreatedBy").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}

	return &event, nil
}

// List retrieves events matching the given filters along with the total
// count before pagination
func (r *EventRepository) List(params models.EventListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	query := r.db.Model(&models.Event{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	if params.StartDate != "" {
		if from, err := parseDateParam(params.StartDate); err == nil {
			query = query.Where("start_date >= ?", from)
		}
	}

	if params.EndDate != "" {
		if to, err := parseDateParam(params.EndDate); err == nil {
			query = query.Where("start_date <= ?", to)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	page := params.PageNumber
	if page < 1 {
		page = 1
	}
	limit := params.PageSize
	if limit < 1 {
		limit = 10
	}

	err := query.Order(eventOrderClause(params.SortBy, params.SortOrder)).
		Preload("Category").
		Preload("CreatedBy").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return events, total, nil
}

// Similar retrieves upcoming events in the same category, excluding the
// event itself
func (r *EventRepository) Similar(event *models.Event, limit int) ([]models.Event, error) {
	if event == nil {
		return nil, errors.New("event cannot be nil")
	}

	var events []models.Event

	query := r.db.Model(&models.Event{}).
		Where("id != ?", event.ID).
		Where("start_date >= ?", time.Now())

	if event.CategoryID != nil {
		query = query.Where("category_id = ?", *event.CategoryID)
	}

	err := query.Order("start_date ASC").
		Preload("Category").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get similar events: %w", err)
	}

	return events, nil
}

// Update updates an event in the database
func (r *EventRepository) Update(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	if err := r.db.Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// Delete removes an event from the database
func (r *EventRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Event{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// eventOrderClause maps the public sort parameters onto database columns.
// Unknown values fall back to start date ascending.
func eventOrderClause(sortBy, sortOrder string) string {
	column := "start_date"
	switch sortBy {
	case models.SortByTitle:
		column = "title"
	case models.SortByCreatedAt:
		column = "created_at"
	}

	direction := "ASC"
	if sortOrder == models.SortOrderDesc {
		direction = "DESC"
	}

	return column + " " + direction
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
