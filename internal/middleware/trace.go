package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceIDHeader carries the trace ID between the browser client and the API.
const TraceIDHeader = "X-Trace-ID"

const traceIDContextKey = "trace_id"

// Trace tags every request with a trace ID so the error handler and panic
// recovery can correlate their log lines with the response the caller saw.
// An inbound ID is reused only when it is a well-formed UUID; anything else
// is replaced, so callers cannot inject arbitrary strings into the logs.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}

			c.Set(traceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the trace ID tagged onto the request, or "" when the
// trace middleware did not run.
func GetTraceID(c echo.Context) string {
	traceID, _ := c.Get(traceIDContextKey).(string)
	return traceID
}
