package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "RATE_LIMIT", "FETCHER", "FETCH_TIMEOUT_SECONDS", "FETCH_MAX_BODY_BYTES",
		"FETCH_USER_AGENT", "OUTBOUND_RATE_PER_SECOND", "OUTBOUND_BURST", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"STRATEGIES", "SEARCH_LOGGING"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, "standard", cfg.Fetch.Fetcher)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 5*1024*1024, cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, 5.0, cfg.Fetch.RatePerSecond)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"html", "ico"}, cfg.Search.Strategies)
	assert.True(t, cfg.Search.LoggingEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("FETCHER", "COLLY")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "30")
	t.Setenv("OUTBOUND_RATE_PER_SECOND", "0.5")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("STRATEGIES", " ico , HTML ,")
	t.Setenv("SEARCH_LOGGING", "false")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "colly", cfg.Fetch.Fetcher)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 0.5, cfg.Fetch.RatePerSecond)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"ico", "html"}, cfg.Search.Strategies)
	assert.False(t, cfg.Search.LoggingEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "soon")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
}

func TestLoadFromEnv_InvalidRate(t *testing.T) {
	t.Setenv("OUTBOUND_RATE_PER_SECOND", "fast")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8000", RateLimit: 100},
		Fetch:  FetchConfig{Fetcher: "standard", TimeoutSeconds: 10, MaxBodyBytes: 1024, RatePerSecond: 5, Burst: 10},
		Log:    LogConfig{Level: "info", Format: "json"},
		Search: SearchConfig{Strategies: []string{"html", "ico"}, LoggingEnabled: true},
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"zero body limit", func(c *Config) { c.Fetch.MaxBodyBytes = 0 }},
		{"negative rate", func(c *Config) { c.Fetch.RatePerSecond = -1 }},
		{"unknown fetcher", func(c *Config) { c.Fetch.Fetcher = "curl" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"no strategies", func(c *Config) { c.Search.Strategies = nil }},
		{"unknown strategy", func(c *Config) { c.Search.Strategies = []string{"html", "manifest"} }},
	}

	assert.NoError(t, validConfig().Validate())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
