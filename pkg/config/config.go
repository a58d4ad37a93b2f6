// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, fetcher, logging and favicon strategies

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Fetch contains outbound page fetching configuration
	Fetch FetchConfig

	// Log contains logging configuration
	Log LogConfig

	// Search contains favicon search configuration
	Search SearchConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per minute
	RateLimit int
}

// FetchConfig holds page fetcher configuration
type FetchConfig struct {
	// Fetcher selects the transport (standard/colly)
	Fetcher string

	// TimeoutSeconds bounds each outbound request
	TimeoutSeconds int

	// MaxBodyBytes truncates fetched pages
	MaxBodyBytes int

	// UserAgent is sent with outbound requests
	UserAgent string

	// RatePerSecond limits outbound requests; 0 disables the limiter
	RatePerSecond float64

	// Burst is the outbound limiter's bucket size
	Burst int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string

	// Format is json or text
	Format string

	// File, when set, receives rotated log output
	File string
}

// SearchConfig holds favicon search configuration
type SearchConfig struct {
	// Strategies lists discovery strategies in the order they are tried
	Strategies []string

	// LoggingEnabled turns on per-search diagnostic logging
	LoggingEnabled bool
}

var (
	validFetchers   = map[string]bool{"standard": true, "colly": true}
	validStrategies = map[string]bool{"html": true, "ico": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	rate, err := getEnvAsFloatOrDefault("OUTBOUND_RATE_PER_SECOND", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 100),
		},
		Fetch: FetchConfig{
			Fetcher:        strings.ToLower(getEnvOrDefault("FETCHER", "standard")),
			TimeoutSeconds: getEnvAsIntOrDefault("FETCH_TIMEOUT_SECONDS", 10),
			MaxBodyBytes:   getEnvAsIntOrDefault("FETCH_MAX_BODY_BYTES", 5*1024*1024),
			UserAgent:      getEnvOrDefault("FETCH_USER_AGENT", "FaviconFinder/1.0"),
			RatePerSecond:  rate,
			Burst:          getEnvAsIntOrDefault("OUTBOUND_BURST", 10),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		Search: SearchConfig{
			Strategies:     splitList(getEnvOrDefault("STRATEGIES", "html,ico")),
			LoggingEnabled: getEnvAsBoolOrDefault("SEARCH_LOGGING", true),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Fetch.MaxBodyBytes < 1 {
		return errors.New("max body bytes must be positive")
	}

	if c.Fetch.RatePerSecond < 0 {
		return errors.New("outbound rate cannot be negative")
	}

	if !validFetchers[c.Fetch.Fetcher] {
		return fmt.Errorf("fetcher must be 'standard' or 'colly', got %q", c.Fetch.Fetcher)
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}

	if len(c.Search.Strategies) == 0 {
		return errors.New("at least one favicon strategy is required")
	}

	for _, s := range c.Search.Strategies {
		if !validStrategies[s] {
			return fmt.Errorf("unknown favicon strategy %q", s)
		}
	}

	return nil
}
