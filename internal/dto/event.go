package dto

// CreateEventRequest contains the fields required to create an event.
// Dates travel as RFC 3339 strings, matching the wire contract.
type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required,iso_datetime"`
	EndDate     string   `json:"endDate" validate:"required,iso_datetime"`
	Location    string   `json:"location" validate:"required,min=1,max=255"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	CategoryID  string   `json:"categoryId,omitempty" validate:"omitempty,uuid4"`
}

// UpdateEventRequest is a partial update: nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	StartDate   *string  `json:"startDate,omitempty" validate:"omitempty,iso_datetime"`
	EndDate     *string  `json:"endDate,omitempty" validate:"omitempty,iso_datetime"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	CategoryID  *string  `json:"categoryId,omitempty" validate:"omitempty,uuid4"`
}
