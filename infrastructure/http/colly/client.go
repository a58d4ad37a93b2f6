// ABOUTME: Colly-backed HTTP client used as an alternative page fetcher
// ABOUTME: Each request runs on a fresh collector so concurrent searches share no state

package colly

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"favicon-finder-api/core/interfaces"
	"github.com/gocolly/colly"
	"golang.org/x/time/rate"
)

const (
	defaultUserAgent    = "FaviconFinder/1.0"
	defaultMaxBodyBytes = 5 * 1024 * 1024
)

var errNoResponse = errors.New("collector finished without a response")

// Options configures a CollyHTTPClient
type Options struct {
	Timeout       time.Duration
	UserAgent     string
	MaxBodyBytes  int
	RatePerSecond float64
	Burst         int
}

// CollyHTTPClient implements the HTTPClient interface on top of colly collectors
type CollyHTTPClient struct {
	timeout      time.Duration
	userAgent    string
	maxBodyBytes int
	limiter      *rate.Limiter
}

// NewCollyHTTPClient creates a colly-backed client
func NewCollyHTTPClient(opts Options) *CollyHTTPClient {
	c := &CollyHTTPClient{
		timeout:      opts.Timeout,
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.maxBodyBytes <= 0 {
		c.maxBodyBytes = defaultMaxBodyBytes
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
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
func (c *CollyHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodGet, url)
}

// Head performs an HTTP HEAD request
func (c *CollyHTTPClient) Head(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodHead, url)
}

func (c *CollyHTTPClient) do(ctx context.Context, method, url string) (interfaces.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	// Collectors are not context aware; check before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collector := colly.NewCollector(
		colly.UserAgent(c.userAgent),
		// One byte over the cap marks the body as truncated
		colly.MaxBodySize(c.maxBodyBytes+1),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(c.timeout)
	collector.ParseHTTPErrorResponse = true

	var captured *collyResponse
	collector.OnResponse(func(r *colly.Response) {
		captured = &collyResponse{
			statusCode: r.StatusCode,
			body:       r.Body,
		}
		if len(captured.body) > c.maxBodyBytes {
			captured.body = captured.body[:c.maxBodyBytes]
			captured.truncated = true
		}
		if r.Headers != nil {
			captured.headers = *r.Headers
		}
	})

	if err := collector.Request(method, url, nil, nil, nil); err != nil {
		return nil, err
	}
	if captured == nil {
		return nil, errNoResponse
	}
	return captured, nil
}

// collyResponse implements the Response interface over a buffered colly response
type collyResponse struct {
	statusCode int
	body       []byte
	headers    http.Header
	truncated  bool
}

func (r *collyResponse) StatusCode() int {
	return r.statusCode
}

func (r *collyResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

func (r *collyResponse) Header(key string) string {
	return r.headers.Get(key)
}

// Truncated reports whether the body was cut at the size limit
func (r *collyResponse) Truncated() bool {
	return r.truncated
}
