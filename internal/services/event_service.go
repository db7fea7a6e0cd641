package services

import (
	"context"
	"fmt"

	"github.com/ross2p/ems-app/internal/apiclient"
	"github.com/ross2p/ems-app/internal/dto"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
)

// EventService wraps the event endpoints.
type EventService struct {
	client *apiclient.Client
}

// NewEventService creates a new event service over the shared client.
func NewEventService(client *apiclient.Client) EventServiceInterface {
	return &EventService{client: client}
}

// List fetches a page of events matching the given filters.
func (s *EventService) List(ctx context.Context, params models.EventListParams) (*dto.PageResponse[models.Event], error) {
	var out dto.PageResponse[models.Event]
	if err := s.client.Get(ctx, routeEvents, query.EventFiltersValues(params), &out); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return &out, nil
}

// Get fetches a single event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	var out models.Event
	if err := s.client.Get(ctx, routeEvent(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return &out, nil
}

// Similar fetches events related to the given one (same category, close in
// time).
func (s *EventService) Similar(ctx context.Context, id string) ([]models.Event, error) {
	var out []models.Event
	if err := s.client.Get(ctx, routeEventSimilar(id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get similar events for %s: %w", id, err)
	}
	return out, nil
}

// Create creates a new event owned by the authenticated user.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error) {
	var out models.Event
	if err := s.client.Post(ctx, routeEvents, req, &out); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &out, nil
}

// Update applies a partial update to an event.
func (s *EventService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error) {
	var out models.Event
	if err := s.client.Patch(ctx, routeEvent(id), req, &out); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, routeEvent(id)); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
