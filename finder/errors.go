// ABOUTME: Error types and handling for the favicon finder library
// ABOUTME: Configuration errors are structured; search failures expose the core failure kinds

package finder

import (
	"errors"
	"fmt"

	coreerrors "favicon-finder-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates a configuration error
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

// Kind identifies why a favicon search failed
type Kind = coreerrors.Kind

// Failure kinds reported by Find and SearchAsync
const (
	KindEmptyResponse         = coreerrors.KindEmptyResponse
	KindDecodeFailure         = coreerrors.KindDecodeFailure
	KindNoUsableMarkup        = coreerrors.KindNoUsableMarkup
	KindNoAcceptableCandidate = coreerrors.KindNoAcceptableCandidate
	KindFetchFailed           = coreerrors.KindFetchFailed
)

// KindOf returns the failure kind carried by err
func KindOf(err error) (Kind, bool) {
	return coreerrors.KindOf(err)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsValidationError checks if err reports a bad page URL or unknown strategy
func IsValidationError(err error) bool {
	return coreerrors.IsValidation(err)
}
