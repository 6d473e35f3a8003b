package shared

import (
	"errors"
	"fmt"
)

// RequestError is used when we want a specific error message and StatusCode.
// sane defaults are listed below. For routes that need custom error messages,
// a request error can be generated and a handler expects the router to return
// the exact message inside the request error msg
//
// Error codes should be bubbled where the RequestError msg is expected to be
// returned to the user. If the user should see a generic error message but
// the error chain should include more detail for logging purposes, then a generic
// error should be added that provides context
type RequestError struct {
	StatusCode int
	Err        error
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: err %v", r.StatusCode, r.Err)
}

var (
	// Prediction request validation. The missing-fields and expected-list
	// messages are part of the wire contract; dashboard clients match on
	// them.
	ErrMissingFields   = &RequestError{Err: errors.New("Both 'category' and 'current_stock' are required"), StatusCode: 400}
	ErrEmptyCategory   = &RequestError{Err: errors.New("'category' must be a non-empty string"), StatusCode: 400}
	ErrStockNotNumeric = &RequestError{Err: errors.New("'current_stock' must be a finite number"), StatusCode: 400}
	ErrStockNegative   = &RequestError{Err: errors.New("'current_stock' must not be negative"), StatusCode: 400}
	ErrExpectedList    = &RequestError{Err: errors.New("Expected a list of prediction requests"), StatusCode: 400}
	ErrInvalidItem     = &RequestError{Err: errors.New("invalid prediction request"), StatusCode: 400}

	// Notification request validation.
	ErrMissingEmailFields = &RequestError{Err: errors.New("Missing required fields: 'to' and 'subject'"), StatusCode: 400}
	ErrInvalidRecipient   = &RequestError{Err: errors.New("'to' must be a valid email address"), StatusCode: 400}

	ErrInvalidRequest      = &RequestError{Err: errors.New("invalid request body"), StatusCode: 400}
	ErrInternalServerError = &RequestError{Err: errors.New("internal server error"), StatusCode: 500}

	// Metrics endpoint auth.
	ErrMissingAuth   = &RequestError{Err: errors.New("missing authorization header"), StatusCode: 401}
	ErrInvalidFormat = &RequestError{Err: errors.New("invalid authorization format"), StatusCode: 401}
)
