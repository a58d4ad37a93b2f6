// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Each favicon discovery strategy implements FaviconStrategy

package interfaces

import (
	"context"

	"favicon-finder-api/core/domain"
)

// FaviconStrategy is one way of locating a page's favicon.
// Failures are reported as *errors.FaviconError values.
type FaviconStrategy interface {
	// Name identifies the strategy in logs and API responses
	Name() string

	// Search locates the favicon for pageURL
	Search(ctx context.Context, pageURL string) (*domain.FaviconURL, error)
}
