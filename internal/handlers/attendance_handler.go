package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ross2p/ems-app/internal/dto"
	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/models"
	"github.com/ross2p/ems-app/internal/query"
	"github.com/ross2p/ems-app/internal/repositories"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	eventRepo      repositories.EventRepositoryInterface
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	eventRepo repositories.EventRepositoryInterface,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
	}
}

// List returns attendance records filtered by user and/or event.
func (h *AttendanceHandler) List(c echo.Context) error {
	params := query.ParseAttendanceFilters(c.QueryParams())

	records, err := h.attendanceRepo.List(params)
	if err != nil {
		return SendSystemError(c, err)
	}
	if records == nil {
		records = []models.Attendance{}
	}

	return SendSuccess(c, http.StatusOK, "Attendance records retrieved successfully", records)
}

// Get returns a single attendance record with its event and user preloaded.
func (h *AttendanceHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.AttendanceInvalidID)
	}

	record, err := h.attendanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAttendanceNotFound) {
			return SendError(c, apierrors.AttendanceNotFound)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Attendance record retrieved successfully", record)
}

// ByEvent returns every attendance record for an event.
func (h *AttendanceHandler) ByEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	return h.listFiltered(c, models.AttendanceListParams{EventID: id.String()})
}

// ByUser returns every attendance record for a user.
func (h *AttendanceHandler) ByUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.UserInvalidID)
	}

	return h.listFiltered(c, models.AttendanceListParams{UserID: id.String()})
}

// Create marks the authenticated user as attending an event.
func (h *AttendanceHandler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return SendErrorMessage(c, apierrors.ValidationGeneral, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	// Users can only register themselves
	if req.UserID != userID.String() {
		return SendError(c, apierrors.AuthInsufficientPermission)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return SendError(c, apierrors.EventInvalidID)
	}

	if _, err := h.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return SendError(c, apierrors.EventNotFound)
		}
		return SendSystemError(c, err)
	}

	attendance := &models.Attendance{
		UserID:  userID,
		EventID: eventID,
	}

	if err := h.attendanceRepo.Create(attendance); err != nil {
		if errors.Is(err, repositories.ErrAttendanceAlreadyExists) {
			return SendError(c, apierrors.AttendanceDuplicate)
		}
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusCreated, "Attendance created successfully", attendance)
}

// Delete removes the authenticated user's attendance record.
func (h *AttendanceHandler) Delete(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.AttendanceInvalidID)
	}

	attendance, err := h.attendanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAttendanceNotFound) {
			return SendError(c, apierrors.AttendanceNotFound)
		}
		return SendSystemError(c, err)
	}
	if attendance.UserID != userID {
		return SendError(c, apierrors.AuthInsufficientPermission)
	}

	if err := h.attendanceRepo.Delete(id); err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, http.StatusOK, "Attendance deleted successfully", nil)
}

func (h *AttendanceHandler) listFiltered(c echo.Context, params models.AttendanceListParams) error {
	records, err := h.attendanceRepo.List(params)
	if err != nil {
		return SendSystemError(c, err)
	}
	if records == nil {
		records = []models.Attendance{}
	}

	return SendSuccess(c, http.StatusOK, "Attendance records retrieved successfully", records)
}
