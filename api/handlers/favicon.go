// ABOUTME: Favicon handler exposing single and batch favicon lookups over HTTP
// ABOUTME: Delegates discovery to the favicon finder and maps failures to HTTP errors

package handlers

import (
	"context"
	"net/http"

	"favicon-finder-api/core/errors"
	"favicon-finder-api/core/favicon"
	"github.com/danielgtaylor/huma/v2"
)

// FaviconFinder is the subset of favicon.Finder the handler needs
type FaviconFinder interface {
	Find(ctx context.Context, pageURL string) (*favicon.FindResult, error)
	FindWith(ctx context.Context, pageURL, strategy string) (*favicon.FindResult, error)
	FindBatch(ctx context.Context, pageURLs []string) []favicon.BatchResult
}

// FaviconHandler handles favicon lookup requests
type FaviconHandler struct {
	finder FaviconFinder
}

// NewFaviconHandler creates a new favicon handler
func NewFaviconHandler(finder FaviconFinder) *FaviconHandler {
	return &FaviconHandler{
		finder: finder,
	}
}

// RegisterRoutes registers favicon routes
func (h *FaviconHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "findFavicon",
		Method:      http.MethodGet,
		Path:        "/favicon",
		Summary:     "Find the favicon of a page",
		Description: "Fetches the page and returns the best favicon declared in its head, falling back to /favicon.ico",
		Tags:        []string{"Favicons"},
	}, h.FindFavicon)

	huma.Register(api, huma.Operation{
		OperationID: "findFavicons",
		Method:      http.MethodPost,
		Path:        "/favicons",
		Summary:     "Find favicons for several pages",
		Description: "Looks up favicons concurrently and reports a result for each URL in request order",
		Tags:        []string{"Favicons"},
	}, h.FindFavicons)
}

// FaviconBody is the favicon returned for a page
type FaviconBody struct {
	URL      string `json:"url" doc:"Absolute favicon URL"`
	Type     string `json:"type" doc:"Link relation the favicon was declared with"`
	Strategy string `json:"strategy" doc:"Strategy that found the favicon"`
}

// FindFaviconInput defines the input for a single favicon lookup
type FindFaviconInput struct {
	URL       string `query:"url" required:"true" doc:"Page URL to search" example:"https://example.com"`
	Strategy  string `query:"strategy" enum:"html,ico" doc:"Run only this strategy"`
	Preferred string `query:"preferred" doc:"Preferred favicon type (currently ignored)"`
}

// FindFaviconOutput defines the output for a single favicon lookup
type FindFaviconOutput struct {
	Body FaviconBody
}

// FindFavicon handles the GET /favicon endpoint
func (h *FaviconHandler) FindFavicon(ctx context.Context, input *FindFaviconInput) (*FindFaviconOutput, error) {
	var (
		result *favicon.FindResult
		err    error
	)
	if input.Strategy != "" {
		result, err = h.finder.FindWith(ctx, input.URL, input.Strategy)
	} else {
		result, err = h.finder.Find(ctx, input.URL)
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	return &FindFaviconOutput{Body: toFaviconBody(result)}, nil
}

// FindFaviconsInput defines the input for a batch lookup
type FindFaviconsInput struct {
	Body struct {
		URLs []string `json:"urls" minItems:"1" maxItems:"100" doc:"Page URLs to search"`
	}
}

// FaviconLookupResult is the outcome for one URL of a batch lookup
type FaviconLookupResult struct {
	PageURL string       `json:"pageUrl" doc:"URL that was searched"`
	Status  string       `json:"status" doc:"Lookup status: 'ok' or 'error'"`
	Favicon *FaviconBody `json:"favicon,omitempty" doc:"Favicon found for the page"`
	Kind    string       `json:"kind,omitempty" doc:"Failure kind when the lookup failed"`
	Error   string       `json:"error,omitempty" doc:"Error message if the lookup failed"`
}

// FindFaviconsOutput defines the output for a batch lookup
type FindFaviconsOutput struct {
	Body struct {
		Results []FaviconLookupResult `json:"results" doc:"Lookup results for each URL"`
	}
}

// FindFavicons handles the POST /favicons endpoint
func (h *FaviconHandler) FindFavicons(ctx context.Context, input *FindFaviconsInput) (*FindFaviconsOutput, error) {
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}

	batch := h.finder.FindBatch(ctx, input.Body.URLs)

	output := &FindFaviconsOutput{}
	output.Body.Results = make([]FaviconLookupResult, len(batch))
	for i, r := range batch {
		if r.Err != nil {
			entry := FaviconLookupResult{
				PageURL: r.PageURL,
				Status:  "error",
				Error:   r.Err.Error(),
			}
			if kind, ok := errors.KindOf(r.Err); ok {
				entry.Kind = string(kind)
			} else if errors.IsValidation(r.Err) {
				entry.Kind = "invalid_url"
			}
			output.Body.Results[i] = entry
			continue
		}

		body := toFaviconBody(r.Result)
		output.Body.Results[i] = FaviconLookupResult{
			PageURL: r.PageURL,
			Status:  "ok",
			Favicon: &body,
		}
	}

	return output, nil
}

func toFaviconBody(result *favicon.FindResult) FaviconBody {
	return FaviconBody{
		URL:      result.Favicon.String(),
		Type:     string(result.Favicon.Type),
		Strategy: result.Strategy,
	}
}
