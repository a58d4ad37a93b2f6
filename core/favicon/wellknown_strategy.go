// ABOUTME: Well-known strategy checks the conventional /favicon.ico location at the site root
// ABOUTME: Used as a fallback when the page head declares no usable icon

package favicon

import (
	"context"
	"net/http"
	"net/url"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"favicon-finder-api/core/interfaces"
)

// StrategyWellKnown is the name reported by WellKnownStrategy
const StrategyWellKnown = "ico"

const wellKnownPath = "/favicon.ico"

// WellKnownStrategy checks whether the site serves /favicon.ico
type WellKnownStrategy struct {
	deps interfaces.Dependencies
}

// NewWellKnownStrategy creates a new well-known path strategy
func NewWellKnownStrategy(deps interfaces.Dependencies) *WellKnownStrategy {
	return &WellKnownStrategy{
		deps: deps,
	}
}

// Name implements interfaces.FaviconStrategy
func (s *WellKnownStrategy) Name() string {
	return StrategyWellKnown
}

// Search implements interfaces.FaviconStrategy
func (s *WellKnownStrategy) Search(ctx context.Context, pageURL string) (*domain.FaviconURL, error) {
	page, err := parsePageURL(pageURL)
	if err != nil {
		return nil, err
	}

	if s.deps.HTTPClient == nil {
		return nil, ErrNoHTTPClient
	}

	iconURL := &url.URL{
		Scheme: page.Scheme,
		User:   page.User,
		Host:   page.Host,
		Path:   wellKnownPath,
	}

	status, err := s.checkIcon(ctx, iconURL.String())
	if err != nil {
		s.deps.LoggerOrNop().Debug("Failed to check well-known favicon", map[string]interface{}{
			"url":   iconURL.String(),
			"error": err.Error(),
		})
		return nil, coreerrors.NewFaviconError(coreerrors.KindFetchFailed, err)
	}

	if status < 200 || status > 299 {
		return nil, coreerrors.NewFaviconError(coreerrors.KindNoAcceptableCandidate, &coreerrors.ExternalAPIError{
			StatusCode: status,
			Message:    http.StatusText(status),
			API:        page.Host,
		})
	}

	return &domain.FaviconURL{
		URL:  iconURL,
		Type: domain.FaviconTypeShortcutIcon,
	}, nil
}

// checkIcon issues a HEAD request, retrying with GET when the server rejects HEAD
func (s *WellKnownStrategy) checkIcon(ctx context.Context, iconURL string) (int, error) {
	resp, err := s.deps.HTTPClient.Head(ctx, iconURL)
	if err != nil {
		return 0, err
	}
	resp.Body().Close()

	if resp.StatusCode() != http.StatusMethodNotAllowed && resp.StatusCode() != http.StatusNotImplemented {
		return resp.StatusCode(), nil
	}

	resp, err = s.deps.HTTPClient.Get(ctx, iconURL)
	if err != nil {
		return 0, err
	}
	resp.Body().Close()

	return resp.StatusCode(), nil
}
