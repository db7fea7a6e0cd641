package models

// AttendanceListParams filters attendance records by user and/or event.
type AttendanceListParams struct {
	UserID     string `json:"userId,omitempty"`
	EventID    string `json:"eventId,omitempty"`
	PageNumber int    `json:"pageNumber,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
}
