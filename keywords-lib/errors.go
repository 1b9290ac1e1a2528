// ABOUTME: Error types and handling for the Keywords library
// ABOUTME: Translates core errors into structured library errors

package keywords

import (
	"errors"
	"fmt"

	coreerrors "keywords-app-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid input such as an empty seed
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a keyword was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeUpstream indicates an upstream source failed or throttled us
	ErrorTypeUpstream ErrorType = "upstream"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a missing credential or dependency
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common errors
var (
	// ErrClientClosed is returned when operations are attempted on a closed client
	ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

	// ErrNoTrendsSource is returned when no trends provider is available
	ErrNoTrendsSource = NewError(ErrorTypeConfiguration, "no trends source configured")
)

// wrapError converts core errors into library errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var libErr *Error
	if errors.As(err, &libErr) {
		return err
	}

	switch {
	case coreerrors.IsValidation(err):
		return NewError(ErrorTypeValidation, err.Error()).WithCause(err)
	case coreerrors.IsNotFound(err):
		return NewError(ErrorTypeNotFound, err.Error()).WithCause(err)
	case coreerrors.IsConfiguration(err):
		return NewError(ErrorTypeConfiguration, err.Error()).WithCause(err)
	case coreerrors.IsUpstream(err):
		upstream, _ := coreerrors.AsUpstream(err)
		return NewError(ErrorTypeUpstream, "upstream request failed").
			WithCause(err).
			WithContext("source", upstream.Source).
			WithContext("status", upstream.StatusCode)
	default:
		return NewError(ErrorTypeInternal, "operation failed").WithCause(err)
	}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsUpstreamError checks if an error came from an upstream source
func IsUpstreamError(err error) bool {
	return isType(err, ErrorTypeUpstream)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
