// Package apperror defines the catalog's error values and how they render as
// {"error":{"code":...,"message":...}} responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure with the HTTP status and machine-readable code the API reports.
type Error struct {
	HTTPStatus int
	Code       string
	Message    string
	Internal   error
	Details    map[string]any
}

// Body is the "error" member of an error response.
type Body struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the complete error response.
type Envelope struct {
	Error Body `json:"error"`
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Internal
}

// Is compares status and code, so errors.Is(err, ErrNotFound) holds for every
// copy derived from ErrNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.HTTPStatus == t.HTTPStatus && e.Code == t.Code
}

func (e *Error) body() Body {
	return Body{Code: e.Code, Message: e.Message, Details: e.Details}
}

// derive copies e and applies change to the copy. The package-level values
// are never modified.
func (e *Error) derive(change func(*Error)) *Error {
	c := *e
	change(&c)
	return &c
}

func (e *Error) WithInternal(err error) *Error {
	return e.derive(func(c *Error) { c.Internal = err })
}

func (e *Error) WithMessage(message string) *Error {
	return e.derive(func(c *Error) { c.Message = message })
}

func (e *Error) WithMessagef(format string, args ...any) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

func (e *Error) WithDetails(details map[string]any) *Error {
	return e.derive(func(c *Error) { c.Details = details })
}

func New(status int, code, message string) *Error {
	return &Error{HTTPStatus: status, Code: code, Message: message}
}

var (
	ErrInvalidToken = New(http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
	ErrMissingToken = New(http.StatusUnauthorized, "missing_token", "Missing authorization token")

	ErrNotFound = New(http.StatusNotFound, "not_found", "Resource not found")

	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "Invalid request")
	ErrValidation = New(http.StatusBadRequest, "validation_error", "Validation failed")

	// The operation would leave a dangling or duplicate reference
	ErrConsistency = New(http.StatusBadRequest, "entity_reference_constraint_violation", "Entity reference constraint violated")
	// A property value does not parse as its type's datatype
	ErrInvalidPropertyValue = New(http.StatusBadRequest, "invalid_resource_type_value", "Value does not match the property type")

	ErrTooManyRequests = New(http.StatusTooManyRequests, "rate_limited", "Too many requests")

	ErrInternal           = New(http.StatusInternalServerError, "internal_error", "An internal error occurred")
	ErrDatabase           = New(http.StatusInternalServerError, "database_error", "Database operation failed")
	ErrStorage            = New(http.StatusInternalServerError, "storage_error", "Object storage operation failed")
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "storage_unavailable", "Object storage is not configured")
)

// Resolve maps any error to the status and body the API answers with.
// Errors that are not *Error become a generic 500.
func Resolve(err error) (int, Body) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, appErr.body()
	}
	return ErrInternal.HTTPStatus, ErrInternal.body()
}

func NewBadRequest(message string) *Error {
	return ErrBadRequest.WithMessage(message)
}

// NewValidation reports an invalid field; the field name goes to details.
func NewValidation(field, message string) *Error {
	return ErrValidation.WithMessage(message).WithDetails(map[string]any{"field": field})
}

// NewNotFound reads `<Type> with ID "<id>" does not exist`.
func NewNotFound(resourceType, id string) *Error {
	return ErrNotFound.WithMessagef("%s with ID %q does not exist", resourceType, id)
}

// NewNotLinked reports a missing association between two existing entities.
func NewNotLinked(childType, childID, parentType, parentID string) *Error {
	return ErrNotFound.WithMessagef("%s with ID %q is not linked to %s with ID %q",
		childType, childID, parentType, parentID)
}

func NewConsistency(message string) *Error {
	return ErrConsistency.WithMessage(message)
}

func NewInternal(message string, err error) *Error {
	return ErrInternal.WithMessage(message).WithInternal(err)
}
