// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for the fetcher and logger used when none are supplied

package finder

import (
	"time"

	"favicon-finder-api/core/interfaces"
	httpInfra "favicon-finder-api/infrastructure/http/standard"
	applog "favicon-finder-api/infrastructure/logger/logrus"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 30 * time.Second

// DefaultHTTPClient creates a default HTTP client with sensible timeouts
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(defaultTimeout)
}

// DefaultLogger creates a logger that writes warnings and errors to stdout
func DefaultLogger() interfaces.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return applog.NewWithLogger(l)
}

// WithDefaultDependencies fills in any dependency that has not been set
func WithDefaultDependencies() Option {
	return func(c *Config) error {
		if c.HTTPClient == nil {
			c.HTTPClient = DefaultHTTPClient()
		}
		if c.Logger == nil {
			c.Logger = DefaultLogger()
		}
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		HTTPClient: DefaultHTTPClient(),
		Logger:     DefaultLogger(),
		Strategies: []string{StrategyHTML, StrategyWellKnown},
		Timeout:    defaultTimeout,
	}
}
