// ABOUTME: Main entry point for the Favicon Finder API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"favicon-finder-api/api"
	"favicon-finder-api/api/handlers"
	"favicon-finder-api/core/favicon"
	"favicon-finder-api/core/interfaces"
	collyhttp "favicon-finder-api/infrastructure/http/colly"
	stdhttp "favicon-finder-api/infrastructure/http/standard"
	applog "favicon-finder-api/infrastructure/logger/logrus"
	"favicon-finder-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger, err := applog.New(applog.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting Favicon Finder API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"fetcher":    cfg.Fetch.Fetcher,
		"strategies": cfg.Search.Strategies,
	})

	httpClient := newHTTPClient(cfg, logger)

	// Strategies only log when search logging is on
	var searchLogger interfaces.Logger = interfaces.NopLogger{}
	if cfg.Search.LoggingEnabled {
		searchLogger = logger
	}
	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     searchLogger,
	}

	strategies, err := favicon.NewStrategies(cfg.Search.Strategies, deps)
	if err != nil {
		log.Fatalf("Invalid strategies: %v", err)
	}
	finder := favicon.NewFinder(logger, strategies...)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: time.Minute,
	}
	humaAPI, router, stopMiddleware := api.NewAPIWithMiddleware(apiConfig)

	faviconHandler := handlers.NewFaviconHandler(finder)
	faviconHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Fetch.TimeoutSeconds)*2*time.Second + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = srv.Shutdown(ctx)
	stopMiddleware()
	if err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// newHTTPClient builds the page fetcher selected by configuration
func newHTTPClient(cfg *config.Config, logger interfaces.Logger) interfaces.HTTPClient {
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second

	if cfg.Fetch.Fetcher == "colly" {
		logger.Info("Using colly fetcher", nil)
		return collyhttp.NewCollyHTTPClient(collyhttp.Options{
			Timeout:       timeout,
			UserAgent:     cfg.Fetch.UserAgent,
			MaxBodyBytes:  cfg.Fetch.MaxBodyBytes,
			RatePerSecond: cfg.Fetch.RatePerSecond,
			Burst:         cfg.Fetch.Burst,
		})
	}

	var transportLogger interfaces.Logger
	if cfg.Log.Level == "debug" {
		transportLogger = logger
	}
	return stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:       timeout,
		UserAgent:     cfg.Fetch.UserAgent,
		MaxBodyBytes:  int64(cfg.Fetch.MaxBodyBytes),
		RatePerSecond: cfg.Fetch.RatePerSecond,
		Burst:         cfg.Fetch.Burst,
		Logger:        transportLogger,
	})
}
