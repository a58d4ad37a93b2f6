// ABOUTME: Public types for the favicon finder library
// ABOUTME: Flattened views of core results that callers can use without importing core packages

package finder

import (
	"favicon-finder-api/core/domain"
	"favicon-finder-api/core/favicon"
)

// Strategy names accepted by WithStrategies
const (
	StrategyHTML      = favicon.StrategyHTML
	StrategyWellKnown = favicon.StrategyWellKnown
)

// Favicon is a discovered favicon
type Favicon struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Strategy string `json:"strategy"`
}

// BatchResult is the outcome for one page of FindBatch
type BatchResult struct {
	PageURL string
	Favicon *Favicon
	Err     error
}

// Result is delivered by SearchAsync
type Result struct {
	Favicon *Favicon
	Err     error
}

// RankedTypes returns the link relations that can be selected, most preferred first
func RankedTypes() []string {
	ranked := domain.RankedTypes()
	out := make([]string, len(ranked))
	for i, t := range ranked {
		out[i] = string(t)
	}
	return out
}

func toFavicon(result *favicon.FindResult) *Favicon {
	return &Favicon{
		URL:      result.Favicon.String(),
		Type:     string(result.Favicon.Type),
		Strategy: result.Strategy,
	}
}
