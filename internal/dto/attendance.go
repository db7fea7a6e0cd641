package dto

// CreateAttendanceRequest marks a user as attending an event.
type CreateAttendanceRequest struct {
	UserID  string `json:"userId" validate:"required,uuid4"`
	EventID string `json:"eventId" validate:"required,uuid4"`
}
