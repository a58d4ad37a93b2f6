// ABOUTME: Custom error types for the core business logic
// ABOUTME: Favicon search failures are a closed set of kinds that callers branch on

package errors

import (
	"errors"
	"fmt"
)

// Kind identifies why a favicon search failed
type Kind string

const (
	// KindEmptyResponse means the page was fetched but had no body
	KindEmptyResponse Kind = "empty_response"

	// KindDecodeFailure means the body was not valid UTF-8 text
	KindDecodeFailure Kind = "decode_failure"

	// KindNoUsableMarkup means the text could not be read as an HTML document with a head
	KindNoUsableMarkup Kind = "no_usable_markup"

	// KindNoAcceptableCandidate means no ranked link was found or its href did not resolve
	KindNoAcceptableCandidate Kind = "no_acceptable_candidate"

	// KindFetchFailed means the transport failed or the server answered with an error status
	KindFetchFailed Kind = "fetch_failed"
)

// FaviconError is the failure outcome of a favicon search.
// Cause carries diagnostics only; callers should branch on Kind.
type FaviconError struct {
	Kind  Kind
	Cause error
}

// Error implements the error interface
func (e *FaviconError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("favicon search failed: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("favicon search failed: %s", e.Kind)
}

// Unwrap returns the underlying cause
func (e *FaviconError) Unwrap() error {
	return e.Cause
}

// Is matches any FaviconError of the same kind, so errors.Is works against the sentinels below
func (e *FaviconError) Is(target error) bool {
	t, ok := target.(*FaviconError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrEmptyResponse         = &FaviconError{Kind: KindEmptyResponse}
	ErrDecodeFailure         = &FaviconError{Kind: KindDecodeFailure}
	ErrNoUsableMarkup        = &FaviconError{Kind: KindNoUsableMarkup}
	ErrNoAcceptableCandidate = &FaviconError{Kind: KindNoAcceptableCandidate}
	ErrFetchFailed           = &FaviconError{Kind: KindFetchFailed}
)

// NewFaviconError creates a FaviconError of the given kind
func NewFaviconError(kind Kind, cause error) *FaviconError {
	return &FaviconError{Kind: kind, Cause: cause}
}

// KindOf extracts the failure kind from err
func KindOf(err error) (Kind, bool) {
	var fe *FaviconError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// IsEmptyResponse checks if an error is an empty-response failure
func IsEmptyResponse(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}

// IsDecodeFailure checks if an error is a decode failure
func IsDecodeFailure(err error) bool {
	return errors.Is(err, ErrDecodeFailure)
}

// IsNoUsableMarkup checks if an error is a no-usable-markup failure
func IsNoUsableMarkup(err error) bool {
	return errors.Is(err, ErrNoUsableMarkup)
}

// IsNoAcceptableCandidate checks if an error is a no-acceptable-candidate failure
func IsNoAcceptableCandidate(err error) bool {
	return errors.Is(err, ErrNoAcceptableCandidate)
}

// IsFetchFailed checks if an error is a fetch failure
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an unexpected status from an upstream server
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// ConfigurationError reports a missing or unusable dependency
type ConfigurationError struct {
	Component string
	Message   string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
