// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts favicon search failures to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"

	"favicon-finder-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsConfiguration(err) {
		return huma.Error500InternalServerError("Favicon finder is misconfigured", err)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout("Favicon lookup timed out", err)
	}

	if kind, ok := errors.KindOf(err); ok {
		switch kind {
		case errors.KindFetchFailed:
			return huma.Error502BadGateway("Failed to fetch page", err)
		case errors.KindEmptyResponse,
			errors.KindDecodeFailure,
			errors.KindNoUsableMarkup,
			errors.KindNoAcceptableCandidate:
			return huma.Error404NotFound("No favicon found: " + string(kind))
		}
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
