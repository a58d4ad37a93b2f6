// ABOUTME: Finder runs discovery strategies in order and returns the first favicon found
// ABOUTME: Batch lookups fan out with bounded concurrency and keep input order

package favicon

import (
	"context"
	"fmt"
	"sync"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"favicon-finder-api/core/interfaces"
)

const maxBatchConcurrency = 10

// Configuration failures shared by the strategies and the finder
var (
	ErrNoHTTPClient = &coreerrors.ConfigurationError{Component: "http_client", Message: "HTTP client not configured"}
	ErrNoStrategies = &coreerrors.ConfigurationError{Component: "strategies", Message: "no favicon strategies configured"}
)

// FindResult is a favicon together with the strategy that produced it
type FindResult struct {
	Favicon  *domain.FaviconURL
	Strategy string
}

// BatchResult is the outcome for one URL of FindBatch
type BatchResult struct {
	PageURL string
	Result  *FindResult
	Err     error
}

// Finder composes favicon strategies
type Finder struct {
	strategies []interfaces.FaviconStrategy
	logger     interfaces.Logger
}

// NewFinder creates a finder that tries strategies in the given order
func NewFinder(logger interfaces.Logger, strategies ...interfaces.FaviconStrategy) *Finder {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Finder{
		strategies: strategies,
		logger:     logger,
	}
}

// NewStrategies builds strategies by name in the given order
func NewStrategies(names []string, deps interfaces.Dependencies) ([]interfaces.FaviconStrategy, error) {
	strategies := make([]interfaces.FaviconStrategy, 0, len(names))
	for _, name := range names {
		switch name {
		case StrategyHTML:
			strategies = append(strategies, NewHTMLStrategy(deps))
		case StrategyWellKnown:
			strategies = append(strategies, NewWellKnownStrategy(deps))
		default:
			return nil, &coreerrors.ValidationError{Field: "strategy", Message: fmt.Sprintf("unknown strategy %q", name)}
		}
	}
	return strategies, nil
}

// Strategies returns the names of the configured strategies in order
func (f *Finder) Strategies() []string {
	names := make([]string, len(f.strategies))
	for i, s := range f.strategies {
		names[i] = s.Name()
	}
	return names
}

// Find returns the first favicon any strategy locates.
// When all strategies fail the first strategy's error is returned.
func (f *Finder) Find(ctx context.Context, pageURL string) (*FindResult, error) {
	if len(f.strategies) == 0 {
		return nil, ErrNoStrategies
	}

	var firstErr error
	for _, strategy := range f.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		favicon, err := strategy.Search(ctx, pageURL)
		if err == nil {
			f.logger.Info("Favicon found", map[string]interface{}{
				"url":      pageURL,
				"favicon":  favicon.String(),
				"type":     string(favicon.Type),
				"strategy": strategy.Name(),
			})
			return &FindResult{Favicon: favicon, Strategy: strategy.Name()}, nil
		}

		// An invalid page URL fails every strategy the same way
		if coreerrors.IsValidation(err) {
			return nil, err
		}

		f.logger.Debug("Favicon strategy failed", map[string]interface{}{
			"url":      pageURL,
			"strategy": strategy.Name(),
			"error":    err.Error(),
		})
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

// FindWith runs only the named strategy
func (f *Finder) FindWith(ctx context.Context, pageURL, name string) (*FindResult, error) {
	for _, strategy := range f.strategies {
		if strategy.Name() != name {
			continue
		}
		favicon, err := strategy.Search(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		return &FindResult{Favicon: favicon, Strategy: name}, nil
	}
	return nil, &coreerrors.ValidationError{Field: "strategy", Message: fmt.Sprintf("unknown strategy %q", name)}
}

// FindBatch looks up favicons for several pages concurrently
func (f *Finder) FindBatch(ctx context.Context, pageURLs []string) []BatchResult {
	results := make([]BatchResult, len(pageURLs))
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, maxBatchConcurrency)

	for i, pageURL := range pageURLs {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := f.Find(ctx, target)
			results[idx] = BatchResult{PageURL: target, Result: result, Err: err}
		}(i, pageURL)
	}

	wg.Wait()
	return results
}
