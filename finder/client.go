// ABOUTME: Main client for the favicon finder library
// ABOUTME: Offers favicon discovery for Go programs without the HTTP API layer

package finder

import (
	"context"
	"time"

	"favicon-finder-api/core/domain"
	"favicon-finder-api/core/favicon"
	"favicon-finder-api/core/interfaces"
)

// Client is the main entry point for the favicon finder library
type Client struct {
	finder *favicon.Finder
	html   *favicon.HTMLStrategy
	config Config
}

// Config holds the configuration for the client
type Config struct {
	// HTTP client used to fetch pages
	HTTPClient interfaces.HTTPClient

	// Logger configuration
	Logger interfaces.Logger

	// Strategies are tried in order; see StrategyHTML and StrategyWellKnown
	Strategies []string

	// Timeout bounds each lookup; zero means no limit beyond the caller's context
	Timeout time.Duration
}

// NewClient creates a new favicon finder client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	}

	strategies, err := favicon.NewStrategies(config.Strategies, deps)
	if err != nil {
		return nil, NewError(ErrorTypeConfiguration, "invalid strategy list").WithCause(err)
	}

	return &Client{
		finder: favicon.NewFinder(config.Logger, strategies...),
		html:   favicon.NewHTMLStrategy(deps),
		config: config,
	}, nil
}

// Strategies returns the configured strategy names in the order they are tried
func (c *Client) Strategies() []string {
	return c.finder.Strategies()
}

// Find returns the best favicon for pageURL using the configured strategies
func (c *Client) Find(ctx context.Context, pageURL string) (*Favicon, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.finder.Find(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return toFavicon(result), nil
}

// FindWith runs a single named strategy
func (c *Client) FindWith(ctx context.Context, pageURL, strategy string) (*Favicon, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.finder.FindWith(ctx, pageURL, strategy)
	if err != nil {
		return nil, err
	}
	return toFavicon(result), nil
}

// FindBatch looks up several pages concurrently. Results keep the input order.
func (c *Client) FindBatch(ctx context.Context, pageURLs []string) []BatchResult {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	batch := c.finder.FindBatch(ctx, pageURLs)
	results := make([]BatchResult, len(batch))
	for i, r := range batch {
		results[i] = BatchResult{PageURL: r.PageURL, Err: r.Err}
		if r.Result != nil {
			results[i].Favicon = toFavicon(r.Result)
		}
	}
	return results
}

// SearchAsync inspects the page head only. The channel receives exactly one
// Result and is then closed. preferred is accepted but does not change ranking.
func (c *Client) SearchAsync(ctx context.Context, pageURL string, preferred string, loggingEnabled bool) <-chan Result {
	out := make(chan Result, 1)
	req := favicon.SearchRequest{
		PageURL:        pageURL,
		PreferredType:  domain.FaviconType(preferred),
		LoggingEnabled: loggingEnabled,
	}

	ctx, cancel := c.withTimeout(ctx)
	inner := c.html.SearchAsync(ctx, req)
	go func() {
		defer close(out)
		defer cancel()
		r := <-inner
		result := Result{Err: r.Err}
		if r.Favicon != nil {
			result.Favicon = &Favicon{
				URL:      r.Favicon.String(),
				Type:     string(r.Favicon.Type),
				Strategy: StrategyHTML,
			}
		}
		out <- result
	}()
	return out
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout > 0 {
		return context.WithTimeout(ctx, c.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}

	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if len(config.Strategies) == 0 {
		return NewError(ErrorTypeConfiguration, "at least one strategy is required")
	}

	if config.Timeout < 0 {
		return NewError(ErrorTypeConfiguration, "timeout cannot be negative")
	}

	return nil
}
