package errors

import (
	"fmt"
	"net/http"
)

// APIError is the decoded form of an error envelope: the API answers every
// failure with {statusCode, message, name, data: null} where Name carries the
// error code.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Name       string `json:"name"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s (status %d)", e.Name, e.Message, e.StatusCode)
}

// Code returns the error code carried in the envelope's name field.
func (e *APIError) Code() ErrorCode {
	return ErrorCode(e.Name)
}

// IsAuthError reports whether the error is an authentication or authorization
// failure.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsClientError returns true if the error is a 4xx client error
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// NewAPIError builds an APIError for the given code using its default message
// and HTTP status.
func NewAPIError(code ErrorCode) *APIError {
	return &APIError{
		StatusCode: GetHTTPStatus(code),
		Message:    GetErrorMessage(code),
		Name:       string(code),
	}
}

// GetHTTPStatus maps an error code to the HTTP status the API answers with.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	// 400 Bad Request - Validation errors, malformed requests
	case ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationOutOfRange, ValidationInvalidEmail, ValidationInvalidDate,
		UserInvalidID, EventInvalidID, CategoryInvalidID, AttendanceInvalidID,
		EventInvalidDateRange:
		return http.StatusBadRequest

	// 401 Unauthorized - Authentication failures
	case AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken,
		AuthInvalidTokenFormat, AuthInvalidRefreshToken:
		return http.StatusUnauthorized

	// 403 Forbidden - Authorization failures
	case AuthInsufficientPermission, EventNotOwner:
		return http.StatusForbidden

	// 404 Not Found - Resource not found
	case UserNotFound, EventNotFound, CategoryNotFound, AttendanceNotFound:
		return http.StatusNotFound

	// 409 Conflict - Resource state conflict
	case UserAlreadyExists, CategoryAlreadyExists, AttendanceDuplicate:
		return http.StatusConflict

	// 429 Too Many Requests
	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	// 503 Service Unavailable
	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
