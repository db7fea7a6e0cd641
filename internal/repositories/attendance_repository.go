package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ross2p/ems-app/internal/models"
)

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyExists = errors.New("attendance record already exists")
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepositoryInterface {
	return &AttendanceRepository{
		db: db,
	}
}

// Create creates a new attendance record in the database
func (r *AttendanceRepository) Create(attendance *models.Attendance) error {
	if attendance == nil {
		return errors.New("attendance cannot be nil")
	}

	if err := r.db.Create(attendance).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrAttendanceAlreadyExists
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	return nil
}

// GetByID retrieves an attendance record by its ID
func (r *AttendanceRepository) GetByID(id uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance

	err := r.db.Preload("Event").Preload("User").
		Where("id = ?", id).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return &attendance, nil
}

// List retrieves attendance records matching the given filters
func (r *AttendanceRepository) List(params models.AttendanceListParams) ([]models.Attendance, error) {
	var records []models.Attendance

	query := r.db.Model(&models.Attendance{})

	if params.UserID != "" {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.EventID != "" {
		query = query.Where("event_id = ?", params.EventID)
	}

	page := params.PageNumber
	if page < 1 {
		page = 1
	}
	limit := params.PageSize
	if limit < 1 {
		limit = 50
	}

	err := query.Order("created_at DESC").
		Preload("Event").
		Preload("User").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return records, nil
}

// GetByUserAndEvent retrieves the attendance record linking a user to an event
func (r *AttendanceRepository) GetByUserAndEvent(userID, eventID uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance

	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance by user and event: %w", err)
	}

	return &attendance, nil
}

// Delete removes an attendance record from the database
func (r *AttendanceRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Attendance{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete attendance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}
