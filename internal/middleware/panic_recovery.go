package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/handlers"
)

// PanicRecovery is a middleware that recovers from panics and returns a
// standardized error response
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered",
						"trace_id", GetTraceID(c),
						"panic", fmt.Sprintf("%v", r),
						"stack_trace", string(debug.Stack()),
						"path", c.Request().URL.Path,
						"method", c.Request().Method,
					)

					if err := handlers.SendError(c, apierrors.SystemInternalError); err != nil {
						slog.Error("failed to send panic recovery response", "error", err)
					}
				}
			}()

			return next(c)
		}
	}
}
