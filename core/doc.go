// Package core contains the business logic for the favicon finder.
// It is framework-agnostic and can be used without the HTTP API.
//
// The core package is organized into several sub-packages:
//
// - domain: Favicon types, link references and resolved favicon URLs
// - favicon: Head link extraction, favicon resolution, strategies and the finder
// - errors: Failure kinds and custom error types
// - interfaces: Contracts for external dependencies (HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "favicon-finder-api/core/errors"
//	    "favicon-finder-api/core/favicon"
//	    "favicon-finder-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	html := favicon.NewHTMLStrategy(deps)
//	icon, err := html.Search(ctx, "https://example.com")
//	if kind, ok := errors.KindOf(err); ok {
//	    // branch on kind
//	}
//
// Strategies can be combined with a Finder, which tries them in order:
//
//	finder := favicon.NewFinder(logger, html, favicon.NewWellKnownStrategy(deps))
//	result, err := finder.Find(ctx, "https://example.com")
package core
