// Package validate adapts go-playground/validator to echo's Validator
// interface so request structs can declare their rules as struct tags.
package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Validator struct {
	validate *validator.Validate
}

// New returns an echo.Validator backed by a single validator instance.
// The instance caches struct metadata and is safe for concurrent use.
func New() echo.Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags on i. On failure the returned error is a
// validator.ValidationErrors, so callers can inspect the failing tag.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
