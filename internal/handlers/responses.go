package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/ross2p/ems-app/internal/errors"
)

// Every endpoint answers with the same {statusCode, message, name, data}
// envelope, success and failure alike. Name carries "Success" on the happy
// path and the error code otherwise.

const successName = "Success"

// Envelope is the wire shape of every API response.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Name       string      `json:"name"`
	Data       interface{} `json:"data"`
}

// SendSuccess writes a success envelope with the given payload.
func SendSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		StatusCode: status,
		Message:    message,
		Name:       successName,
		Data:       data,
	})
}

// SendError writes an error envelope for the given error code using its
// default message and HTTP status.
func SendError(c echo.Context, code apierrors.ErrorCode) error {
	status := apierrors.GetHTTPStatus(code)
	return c.JSON(status, Envelope{
		StatusCode: status,
		Message:    apierrors.GetErrorMessage(code),
		Name:       string(code),
	})
}

// SendErrorMessage writes an error envelope with a message overriding the
// code's default.
func SendErrorMessage(c echo.Context, code apierrors.ErrorCode, message string) error {
	status := apierrors.GetHTTPStatus(code)
	return c.JSON(status, Envelope{
		StatusCode: status,
		Message:    message,
		Name:       string(code),
	})
}

// SendSystemError hides the internal error behind a generic envelope and
// logs the original.
func SendSystemError(c echo.Context, err error) error {
	slog.Error("internal server error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, Envelope{
		StatusCode: http.StatusInternalServerError,
		Message:    apierrors.GetErrorMessage(apierrors.SystemInternalError),
		Name:       string(apierrors.SystemInternalError),
	})
}
