// ABOUTME: HTML strategy fetches a page and runs head extraction and favicon resolution on it
// ABOUTME: Each call is independent; the only suspension point is the page fetch

package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"favicon-finder-api/core/interfaces"
)

// StrategyHTML is the name reported by HTMLStrategy
const StrategyHTML = "html"

// SearchRequest describes one HTML favicon search
type SearchRequest struct {
	// PageURL is the page whose head is inspected
	PageURL string

	// PreferredType is accepted for API compatibility but does not affect ranking
	PreferredType domain.FaviconType

	// LoggingEnabled turns diagnostic logging on for this search
	LoggingEnabled bool
}

// Result is the single outcome delivered by SearchAsync
type Result struct {
	Favicon *domain.FaviconURL
	Err     error
}

// HTMLStrategy finds favicons declared with <link> elements in a page's head
type HTMLStrategy struct {
	deps interfaces.Dependencies
}

// NewHTMLStrategy creates a new HTML strategy instance
func NewHTMLStrategy(deps interfaces.Dependencies) *HTMLStrategy {
	return &HTMLStrategy{
		deps: deps,
	}
}

// Name implements interfaces.FaviconStrategy
func (s *HTMLStrategy) Name() string {
	return StrategyHTML
}

// Search implements interfaces.FaviconStrategy with logging enabled
func (s *HTMLStrategy) Search(ctx context.Context, pageURL string) (*domain.FaviconURL, error) {
	return s.SearchWith(ctx, SearchRequest{PageURL: pageURL, LoggingEnabled: true})
}

// SearchAsync runs the search in its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (s *HTMLStrategy) SearchAsync(ctx context.Context, req SearchRequest) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		favicon, err := s.SearchWith(ctx, req)
		out <- Result{Favicon: favicon, Err: err}
	}()
	return out
}

// SearchWith fetches req.PageURL, extracts its head links and resolves the preferred favicon
func (s *HTMLStrategy) SearchWith(ctx context.Context, req SearchRequest) (*domain.FaviconURL, error) {
	logger := interfaces.Logger(interfaces.NopLogger{})
	if req.LoggingEnabled {
		logger = s.deps.LoggerOrNop()
	}

	pageURL, err := parsePageURL(req.PageURL)
	if err != nil {
		return nil, err
	}

	if s.deps.HTTPClient == nil {
		return nil, ErrNoHTTPClient
	}

	markup, err := s.fetchMarkup(ctx, pageURL.String())
	if err != nil {
		logger.Debug("Failed to load page for favicon discovery", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
		return nil, err
	}

	doc, err := ExtractHeadLinks(markup)
	if err != nil {
		logger.Debug("Failed to parse page head", map[string]interface{}{
			"url":        pageURL.String(),
			"error":      err.Error(),
			"html_bytes": len(markup),
		})
		return nil, err
	}

	logger.Debug("Extracted head links", map[string]interface{}{
		"url":      pageURL.String(),
		"links":    len(doc.Links),
		"has_base": doc.HasBase,
	})

	favicon, err := ResolveFavicon(doc, pageURL)
	if err != nil {
		logger.Debug("No acceptable favicon in page head", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Debug("Resolved favicon from page head", map[string]interface{}{
		"url":     pageURL.String(),
		"favicon": favicon.String(),
		"type":    string(favicon.Type),
	})

	return favicon, nil
}

// fetchMarkup downloads the page and decodes it as UTF-8 text
func (s *HTMLStrategy) fetchMarkup(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return "", coreerrors.NewFaviconError(coreerrors.KindFetchFailed, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() >= http.StatusBadRequest {
		return "", coreerrors.NewFaviconError(coreerrors.KindFetchFailed, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
			API:        hostOf(pageURL),
		})
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", coreerrors.NewFaviconError(coreerrors.KindFetchFailed, fmt.Errorf("failed to read response: %w", err))
	}

	if len(body) == 0 {
		return "", coreerrors.NewFaviconError(coreerrors.KindEmptyResponse, nil)
	}

	if tr, ok := resp.(interfaces.TruncatedResponse); ok && tr.Truncated() {
		body = trimPartialRune(body)
	}

	if !utf8.Valid(body) {
		return "", coreerrors.NewFaviconError(coreerrors.KindDecodeFailure, errors.New("body is not valid UTF-8"))
	}

	return string(body), nil
}

// trimPartialRune drops a multi-byte character cut short at the end of b
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if !utf8.FullRune(b[i:]) {
			return b[:i]
		}
		return b
	}
	return b
}

// parsePageURL validates that raw is an absolute http(s) URL
func parsePageURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "url cannot be empty"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, &coreerrors.ValidationError{Field: "url", Message: "scheme must be http or https"}
	}

	if u.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "url must include a host"}
	}

	return u, nil
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return rawURL
}
