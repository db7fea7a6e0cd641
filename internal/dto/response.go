package dto

import "encoding/json"

// Response is the global envelope every API endpoint answers with, success
// and failure alike. On failure Name carries the error code and Data is null.
type Response[T any] struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Name       string `json:"name"`
	Data       *T     `json:"data"`
}

// RawResponse is the envelope with the payload left undecoded; the HTTP
// client uses it to peel the envelope before unmarshalling into the caller's
// target type.
type RawResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Name       string          `json:"name"`
	Data       json.RawMessage `json:"data"`
}

// PageResponse is the paginated collection payload carried inside Response.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
