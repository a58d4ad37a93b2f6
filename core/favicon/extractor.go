// ABOUTME: Head link extraction parses page markup and collects <link> rel/href pairs from the head
// ABOUTME: Parsing is lenient and browser-like, so malformed documents still yield a head

package favicon

import (
	"errors"
	"io"
	"strings"

	"favicon-finder-api/core/domain"
	coreerrors "favicon-finder-api/core/errors"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HeadDocument is what the extractor keeps from a parsed page
type HeadDocument struct {
	// Links holds every <link> under the head, in document order
	Links []domain.LinkReference

	// BaseHref is the href of the first <base href> under the head
	BaseHref string

	// HasBase is true when a <base href> element was present
	HasBase bool
}

var errNoHead = errors.New("document has no head element")

// ExtractHeadLinks parses markup as HTML and returns the head's link references.
// Failures are reported as no_usable_markup.
func ExtractHeadLinks(markup string) (*HeadDocument, error) {
	return extractHeadLinks(strings.NewReader(markup))
}

// extractHeadLinks parses from r. html.Parse only fails when r fails.
func extractHeadLinks(r io.Reader) (*HeadDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, coreerrors.NewFaviconError(coreerrors.KindNoUsableMarkup, err)
	}

	doc := goquery.NewDocumentFromNode(root)
	head := doc.Find("head").First()
	// Defensive: html.Parse synthesizes a head for every document it returns
	if head.Length() == 0 {
		return nil, coreerrors.NewFaviconError(coreerrors.KindNoUsableMarkup, errNoHead)
	}

	result := &HeadDocument{}

	head.Find("link").Each(func(_ int, s *goquery.Selection) {
		result.Links = append(result.Links, domain.LinkReference{
			Rel:  s.AttrOr("rel", ""),
			Href: s.AttrOr("href", ""),
		})
	})

	if base := head.Find("base[href]").First(); base.Length() > 0 {
		result.BaseHref = base.AttrOr("href", "")
		result.HasBase = true
	}

	return result, nil
}
