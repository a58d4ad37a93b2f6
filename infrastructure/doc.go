// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: page fetching and logging.
//
// The infrastructure package is organized by technical concern:
//
// - http/standard: net/http client with retries, body limits and an outbound rate limiter
// - http/colly: the same contract on top of colly collectors
// - logger/logrus: logrus-backed structured logger with optional file rotation
//
// # HTTP Client
//
// The standard client retries transient failures:
//
//	client := standard.NewStandardHTTPClientWithOptions(standard.Options{
//	    Timeout:       10 * time.Second,
//	    RatePerSecond: 5,
//	    Burst:         10,
//	})
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := logrus.New(logrus.Config{Level: "info", Format: "json"})
//	logger.Info("Processing request", map[string]interface{}{
//	    "url": "https://example.com",
//	})
package infrastructure
