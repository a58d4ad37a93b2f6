// ABOUTME: Configuration options for the favicon finder client
// ABOUTME: Provides functional options pattern for flexible client configuration

package finder

import (
	"time"

	"favicon-finder-api/core/interfaces"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = interfaces.NopLogger{}
		return nil
	}
}

// WithStrategies sets the strategies to try, in order
func WithStrategies(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewError(ErrorTypeConfiguration, "at least one strategy is required")
		}
		c.Strategies = append([]string(nil), names...)
		return nil
	}
}

// WithTimeout bounds each lookup
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return NewError(ErrorTypeConfiguration, "timeout cannot be negative").
				WithContext("timeout", timeout.String())
		}
		c.Timeout = timeout
		return nil
	}
}
