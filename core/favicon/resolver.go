// ABOUTME: Favicon resolution filters head links by the recognized vocabulary, ranks them and
// ABOUTME: resolves the winning href to an absolute URL against the page or its <base> element

package favicon

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
)

var (
	errNoRankedCandidate = errors.New("no link with a ranked favicon type")
	errEmptyHref         = errors.New("winning link has an empty href")
	errNotAbsolute       = errors.New("resolved href is not an absolute URL")
)

// candidate is a link whose rel passed the vocabulary filter
type candidate struct {
	ref domain.LinkReference
	typ domain.FaviconType
}

// filterCandidates keeps links whose rel is in the recognized vocabulary, preserving order
func filterCandidates(links []domain.LinkReference) []candidate {
	out := make([]candidate, 0, len(links))
	for _, link := range links {
		if link.Rel == "" {
			continue
		}
		if typ, ok := domain.ParseFaviconType(link.Rel); ok {
			out = append(out, candidate{ref: link, typ: typ})
		}
	}
	return out
}

// selectCandidate picks the first candidate of the highest ranked type present.
// Recognized types outside the ranking never win.
func selectCandidate(candidates []candidate) (candidate, bool) {
	for _, typ := range domain.RankedTypes() {
		for _, c := range candidates {
			if c.typ == typ {
				return c, true
			}
		}
	}
	return candidate{}, false
}

// resolveHref turns href into an absolute URL.
// Hrefs starting with http:// or https:// are parsed as-is; anything else is
// resolved against the <base> href (itself resolved against the page) or the page URL.
func resolveHref(href string, pageURL *url.URL, doc *HeadDocument) (*url.URL, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, errEmptyHref
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		abs, err := url.Parse(href)
		if err != nil {
			return nil, err
		}
		if !abs.IsAbs() || abs.Host == "" {
			return nil, errNotAbsolute
		}
		return abs, nil
	}

	ref, err := url.Parse(href)
	if err != nil {
		return nil, err
	}

	resolved := baseURL(pageURL, doc).ResolveReference(ref)
	if !resolved.IsAbs() {
		return nil, errNotAbsolute
	}
	return resolved, nil
}

// baseURL returns the document's effective base: the <base> href when it resolves, otherwise the page URL
func baseURL(pageURL *url.URL, doc *HeadDocument) *url.URL {
	if doc == nil || !doc.HasBase {
		return pageURL
	}

	href := strings.TrimSpace(doc.BaseHref)
	if href == "" {
		return pageURL
	}

	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}

	base := pageURL.ResolveReference(ref)
	if !base.IsAbs() || base.Host == "" {
		return pageURL
	}
	return base
}

// ResolveFavicon selects the preferred icon from doc and returns its absolute URL.
// Every failure is reported as no_acceptable_candidate.
func ResolveFavicon(doc *HeadDocument, pageURL *url.URL) (*domain.FaviconURL, error) {
	var links []domain.LinkReference
	if doc != nil {
		links = doc.Links
	}

	winner, ok := selectCandidate(filterCandidates(links))
	if !ok {
		return nil, coreerrors.NewFaviconError(coreerrors.KindNoAcceptableCandidate, errNoRankedCandidate)
	}

	resolved, err := resolveHref(winner.ref.Href, pageURL, doc)
	if err != nil {
		return nil, coreerrors.NewFaviconError(coreerrors.KindNoAcceptableCandidate,
			fmt.Errorf("resolve %q: %w", winner.ref.Href, err))
	}

	return &domain.FaviconURL{
		URL:  resolved,
		Type: winner.typ,
	}, nil
}
