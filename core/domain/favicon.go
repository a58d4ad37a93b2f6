// ABOUTME: Domain models for favicon discovery: recognized rel vocabulary, link references and resolved icons
// ABOUTME: The vocabulary is fixed at start-up and shared read-only between concurrent searches

package domain

import "net/url"

// FaviconType is a recognized value of a link element's rel attribute.
type FaviconType string

const (
	FaviconTypeAppleTouchIcon            FaviconType = "apple-touch-icon"
	FaviconTypeAppleTouchIconPrecomposed FaviconType = "apple-touch-icon-precomposed"
	FaviconTypeShortcutIcon              FaviconType = "shortcut icon"
	FaviconTypeIcon                      FaviconType = "icon"
	FaviconTypeFluidIcon                 FaviconType = "fluid-icon"
	FaviconTypeMaskIcon                  FaviconType = "mask-icon"
)

// recognizedTypes is every rel value accepted as a favicon declaration.
// It must stay a superset of rankedTypes.
var recognizedTypes = map[FaviconType]struct{}{
	FaviconTypeAppleTouchIcon:            {},
	FaviconTypeAppleTouchIconPrecomposed: {},
	FaviconTypeShortcutIcon:              {},
	FaviconTypeIcon:                      {},
	FaviconTypeFluidIcon:                 {},
	FaviconTypeMaskIcon:                  {},
}

// rankedTypes is the selection order, most preferred first.
// Recognized types missing from this list can never be selected.
var rankedTypes = [...]FaviconType{
	FaviconTypeAppleTouchIcon,
	FaviconTypeAppleTouchIconPrecomposed,
	FaviconTypeShortcutIcon,
	FaviconTypeIcon,
}

// ParseFaviconType matches a rel value against the recognized vocabulary.
// The comparison is exact, so multi-word tokens such as "shortcut icon" must match verbatim.
func ParseFaviconType(rel string) (FaviconType, bool) {
	t := FaviconType(rel)
	_, ok := recognizedTypes[t]
	return t, ok
}

// IsRecognized reports whether t belongs to the recognized vocabulary
func (t FaviconType) IsRecognized() bool {
	_, ok := recognizedTypes[t]
	return ok
}

// RankedTypes returns a copy of the selection order, most preferred first
func RankedTypes() []FaviconType {
	out := make([]FaviconType, len(rankedTypes))
	copy(out, rankedTypes[:])
	return out
}

// RecognizedTypes returns every recognized type, ranked types first
func RecognizedTypes() []FaviconType {
	return append(RankedTypes(), FaviconTypeFluidIcon, FaviconTypeMaskIcon)
}

// LinkReference is one <link> element found in a document head
type LinkReference struct {
	Rel  string
	Href string
}

// FaviconURL is the terminal artifact of a search
type FaviconURL struct {
	URL  *url.URL
	Type FaviconType
}

// String returns the absolute icon URL
func (f FaviconURL) String() string {
	if f.URL == nil {
		return ""
	}
	return f.URL.String()
}
