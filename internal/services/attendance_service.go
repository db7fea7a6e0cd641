package services

import (
	"context"
	"fmt"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
)

// AttendanceService wraps the attendance endpoints.
type AttendanceService struct {
	client *apiclient.Client
}

// NewAttendanceService creates a new attendance service over the shared
// client.
func NewAttendanceService(client *apiclient.Client) AttendanceServiceInterface {
	return &AttendanceService{client: client}
}

// List fetches attendance records matching the given filters.
func (s *AttendanceService) List(ctx context.Context, params models.AttendanceListParams) ([]models.Attendance, error) {
	var out []models.Attendance
	if err := s.client.Get(ctx, routeAttendance, query.AttendanceFiltersValues(params), &out); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return out, nil
}

// Get fetches a single attendance record by ID.
func (s *AttendanceService) Get(ctx context.Context, id string) (*models.Attendance, error) {
	var out models.Attendance
	if err := s.client.Get(ctx, routeAttendanceByID(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get attendance %s: %w", id, err)
	}
	return &out, nil
}

// ByEvent fetches all attendance records for an event.
func (s *AttendanceService) ByEvent(ctx context.Context, eventID string) ([]models.Attendance, error) {
	var out []models.Attendance
	if err := s.client.Get(ctx, routeAttendanceByEvent(eventID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list attendance for event %s: %w", eventID, err)
	}
	return out, nil
}

// ByUser fetches all attendance records for a user.
func (s *AttendanceService) ByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	var out []models.Attendance
	if err := s.client.Get(ctx, routeAttendanceByUser(userID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list attendance for user %s: %w", userID, err)
	}
	return out, nil
}

// Create marks a user as attending an event.
func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	var out models.Attendance
	if err := s.client.Post(ctx, routeAttendance, req, &out); err != nil {
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}
	return &out, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, routeAttendanceByID(id)); err != nil {
		return fmt.Errorf("failed to delete attendance %s: %w", id, err)
	}
	return nil
}
