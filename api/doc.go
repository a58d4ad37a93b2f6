// Package api provides the HTTP API layer for the favicon finder.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /favicon?url=https://example.com[&strategy=html|ico]
//	POST /favicons {"urls": ["https://example.com", "https://go.dev"]}
//
// The OpenAPI spec is available at /openapi.json and the interactive
// docs at /docs.
//
// # Middleware
//
// The API includes middleware for:
// - Request logging with request IDs
// - Rate limiting per client IP
// - CORS handling
//
// # Usage Example
//
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	}
//	humaAPI, router, stop := api.NewAPIWithMiddleware(cfg)
//	defer stop()
//
//	handlers.NewFaviconHandler(finder).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format. Invalid page URLs map to 400,
// pages without a usable favicon to 404, and upstream fetch failures to 502.
package api
