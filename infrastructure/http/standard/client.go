// ABOUTME: Standard HTTP client implementation with retry logic, timeout and outbound rate limiting
// ABOUTME: Fetches pages for favicon discovery with exponential backoff on transient failures

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"favicon-finder-api/core/interfaces"
	"golang.org/x/time/rate"
)

const (
	maxRetries          = 3
	defaultUserAgent    = "FaviconFinder/1.0"
	defaultMaxBodyBytes = 5 * 1024 * 1024
)

// Options configures a StandardHTTPClient
type Options struct {
	// Timeout bounds each request, including reading the body
	Timeout time.Duration

	// UserAgent is sent with every request
	UserAgent string

	// MaxBodyBytes truncates response bodies; 0 uses the default
	MaxBodyBytes int64

	// RatePerSecond limits outbound requests; 0 disables limiting
	RatePerSecond float64

	// Burst is the limiter's bucket size
	Burst int

	// Logger receives outgoing request logs when set
	Logger interfaces.Logger
}

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	limiter      *rate.Limiter
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithOptions(Options{Timeout: timeout})
}

// NewStandardHTTPClientWithOptions creates a new HTTP client from opts
func NewStandardHTTPClientWithOptions(opts Options) *StandardHTTPClient {
	transport := http.DefaultTransport
	if opts.Logger != nil {
		transport = &LoggingRoundTripper{Transport: transport, Logger: opts.Logger}
	}

	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.maxBodyBytes <= 0 {
		c.maxBodyBytes = defaultMaxBodyBytes
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return c
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	// Perform request with retry logic
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		if attempt < maxRetries-1 {
			// Close body for retry
			resp.Body.Close()
			resp = nil
		}
	}

	if resp == nil {
		return nil, lastErr
	}

	return c.wrap(resp), nil
}

// Head performs an HTTP HEAD request without retries
func (c *StandardHTTPClient) Head(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return c.wrap(resp), nil
}

func (c *StandardHTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
}

// wait blocks until the outbound limiter admits a request
func (c *StandardHTTPClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *StandardHTTPClient) wrap(resp *http.Response) *httpResponse {
	return &httpResponse{
		statusCode: resp.StatusCode,
		body: &limitedBody{
			body:      resp.Body,
			remaining: c.maxBodyBytes,
		},
		headers: resp.Header,
	}
}

// limitedBody caps reads at a byte limit and records whether anything was left past it
type limitedBody struct {
	body      io.ReadCloser
	remaining int64
	truncated bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		// Peek one byte past the limit to detect truncation
		var extra [1]byte
		if n, _ := b.body.Read(extra[:]); n > 0 {
			b.truncated = true
		}
		return 0, io.EOF
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.body.Read(p)
	b.remaining -= int64(n)
	return n, err
}

func (b *limitedBody) Close() error {
	return b.body.Close()
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// Truncated reports whether the body was cut at the size limit
func (r *httpResponse) Truncated() bool {
	if lb, ok := r.body.(*limitedBody); ok {
		return lb.truncated
	}
	return false
}
