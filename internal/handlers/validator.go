package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/ross2p/ems-app/internal/validation"
)

// CustomValidator implements echo.Validator over the shared validation rules.
// Validation failures propagate as-is; the HTTP error handler turns them into
// envelope responses.
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.NewValidator()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
