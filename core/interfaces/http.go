package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for fetching pages.
// This abstraction allows for easy mocking in tests and switching between
// different HTTP client implementations (standard library, colly, etc.)
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// Returns a Response interface or an error if the request fails.
	Get(ctx context.Context, url string) (Response, error)

	// Head performs an HTTP HEAD request to the specified URL.
	// The returned body is empty but must still be closed.
	Head(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
// This abstraction allows different HTTP client implementations to provide
// their own response types while maintaining a consistent interface.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	// Header names are case-insensitive.
	Header(key string) string
}

// TruncatedResponse is implemented by responses whose body may be cut at a size limit.
// Truncated is only meaningful once the body has been read to EOF.
type TruncatedResponse interface {
	Truncated() bool
}
