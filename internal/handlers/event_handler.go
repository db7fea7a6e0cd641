package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ross2p/ems-app/internal/dto"
	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
	"github.com/ross2p/ems-app/internal/repositories"
)

const similarEventsLimit = 4

// EventHandler handles event endpoints
type EventHandler struct {
	eventRepo repositories.EventRepositoryInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventRepo repositories.EventRepositoryInterface) *EventHandler {
	return &EventHandler{
		eventRepo: eventRepo,
	}
}

// List returns a filtered, sorted and paginated page of events.
func (h *EventHandler) List(c echo.Context) error {
	params := query.ParseEventFilters(c.QueryParams())

	events, total, err := h.eventRepo.List(params)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Events retrieved successfully",
		buildPage(events, total, params.PageNumber, params.PageSize))
}

// Get returns a single event by ID.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	event, err := h.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return SendError(c, apierrors.EventNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Event retrieved successfully", event)
}

// Similar returns upcoming events in the same category as the given event.
func (h *EventHandler) Similar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	event, err := h.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return SendError(c, apierrors.EventNotFound)
		}
		return SendSystemError(c, err)
	}

	similar, err := h.eventRepo.Similar(event, similarEventsLimit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Similar events retrieved successfully", similar)
}

// Create creates a new event owned by the authenticated user.
func (h *EventHandler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate)
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate)
	}
	if !endDate.After(startDate) {
		return SendError(c, apierrors.EventInvalidDateRange)
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		CreatedByID: userID,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return SendError(c, apierrors.CategoryInvalidID)
		}
		event.CategoryID = &categoryID
	}

	if err := h.eventRepo.Create(event); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, "Event created successfully", event)
}

// Update applies a partial update to an event owned by the authenticated
// user.
func (h *EventHandler) Update(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	event, err := h.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return SendError(c, apierrors.EventNotFound)
		}
		return SendSystemError(c, err)
	}
	if event.CreatedByID != userID {
		return SendError(c, apierrors.EventNotOwner)
	}

	if err := applyEventUpdate(event, req); err != nil {
		return SendError(c, apierrors.EventInvalidDateRange)
	}

	if err := h.eventRepo.Update(event); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Event updated successfully", event)
}

// Delete removes an event owned by the authenticated user.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	event, err := h.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return SendError(c, apierrors.EventNotFound)
		}
		return SendSystemError(c, err)
	}
	if event.CreatedByID != userID {
		return SendError(c, apierrors.EventNotOwner)
	}

	if err := h.eventRepo.Delete(id); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

func applyEventUpdate(event *models.Event, req dto.UpdateEventRequest) error {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return err
		}
		event.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return err
		}
		event.EndDate = endDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Latitude != nil {
		event.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		event.Longitude = req.Longitude
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return err
		}
		event.CategoryID = &categoryID
	}

	if !event.EndDate.After(event.StartDate) {
		return errors.New("event end date must be after its start date")
	}
	return nil
}

// buildPage wraps repository results in the paginated payload shape. The
// defaults mirror what the repositories apply when page values are unset.
func buildPage[T any](items []T, total int64, page, limit int) dto.PageResponse[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	if items == nil {
		items = []T{}
	}

	return dto.PageResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
