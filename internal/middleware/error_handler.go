package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/handlers"
	"github.com/ross2p/ems-app/internal/validation"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// CustomHTTPErrorHandler formats every error that escapes a handler as an
// envelope response and records it.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var code apierrors.ErrorCode
	var message string

	switch e := err.(type) {
	case validator.ValidationErrors:
		code = apierrors.ValidationGeneral
		message = formatFieldErrors(validation.FormatValidationErrors(e))
	case *echo.HTTPError:
		code = mapHTTPStatusToErrorCode(e.Code)
		message = fmt.Sprintf("%v", e.Message)
	default:
		code = apierrors.SystemInternalError
		message = apierrors.GetErrorMessage(code)
	}

	status := apierrors.GetHTTPStatus(code)

	logLevel := slog.LevelWarn
	if status >= 500 {
		logLevel = slog.LevelError
	}
	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", GetTraceID(c),
		"error_code", string(code),
		"status", status,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(string(code), c.Path(), fmt.Sprintf("%d", status)).Inc()

	if sendErr := handlers.SendErrorMessage(c, code, message); sendErr != nil {
		slog.Error("failed to send error response", "error", sendErr)
	}
}

func mapHTTPStatusToErrorCode(status int) apierrors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity:
		return apierrors.ValidationGeneral
	case http.StatusUnauthorized:
		return apierrors.AuthMissingToken
	case http.StatusForbidden:
		return apierrors.AuthInsufficientPermission
	case http.StatusNotFound:
		return apierrors.EventNotFound
	case http.StatusTooManyRequests:
		return apierrors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return apierrors.SystemServiceUnavailable
	default:
		return apierrors.SystemInternalError
	}
}

func formatFieldErrors(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+" "+msg)
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
