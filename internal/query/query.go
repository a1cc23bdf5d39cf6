// Package query maps search state to and from URL query strings.
//
// A SearchQuery is a value: every helper returns a new query and leaves its
// receiver untouched. Two queries describe the same search exactly when their
// encoded forms are equal.
package query

import (
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"hubgrip/internal/domain"
	"hubgrip/internal/log"
)

var logger = log.ForService("query")

// SearchPath is the route of the search view
const SearchPath = "/packages/search"

// URL keys
const (
	KeyTextQueryWeb      = "ts_query_web"
	KeyTextQuery         = "ts_query"
	KeyPage              = "page"
	KeyDeprecated        = "deprecated"
	KeyOperators         = "operators"
	KeyVerifiedPublisher = "verified_publisher"
	KeyOfficial          = "official"
)

// Facet keys
const (
	FacetKind         = "kind"
	FacetOrg          = "org"
	FacetUser         = "user"
	FacetRepo         = "repo"
	FacetLicense      = "license"
	FacetCapabilities = "capabilities"
	FacetCategory     = "category"
)

// FacetKeys lists the facet names carried in the URL
var FacetKeys = []string{FacetKind, FacetOrg, FacetUser, FacetRepo, FacetLicense, FacetCapabilities, FacetCategory}

// IsFacetKey reports whether key names a known facet
func IsFacetKey(key string) bool {
	for _, k := range FacetKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle is one of the boolean filters
type Toggle int

const (
	ToggleDeprecated Toggle = iota
	ToggleOperators
	ToggleVerifiedPublisher
	ToggleOfficial
)

// Key returns the URL key of the toggle
func (t Toggle) Key() string {
	switch t {
	case ToggleDeprecated:
		return KeyDeprecated
	case ToggleOperators:
		return KeyOperators
	case ToggleVerifiedPublisher:
		return KeyVerifiedPublisher
	case ToggleOfficial:
		return KeyOfficial
	}
	return ""
}

// Label returns a human readable name
func (t Toggle) Label() string {
	switch t {
	case ToggleDeprecated:
		return "Include deprecated"
	case ToggleOperators:
		return "Only operators"
	case ToggleVerifiedPublisher:
		return "Verified publishers"
	case ToggleOfficial:
		return "Official"
	}
	return ""
}

// Toggles lists every toggle in display order
var Toggles = []Toggle{ToggleOfficial, ToggleVerifiedPublisher, ToggleOperators, ToggleDeprecated}

// SearchQuery is the search state carried in the URL
type SearchQuery struct {
	TextQuery         string
	TextQueryTokens   []string
	PageNumber        int
	Filters           map[string][]string
	Deprecated        bool
	Operators         bool
	VerifiedPublisher bool
	Official          bool
}

// Toggled returns the value of toggle t
func (q SearchQuery) Toggled(t Toggle) bool {
	switch t {
	case ToggleDeprecated:
		return q.Deprecated
	case ToggleOperators:
		return q.Operators
	case ToggleVerifiedPublisher:
		return q.VerifiedPublisher
	case ToggleOfficial:
		return q.Official
	}
	return false
}

func (q *SearchQuery) setToggle(t Toggle, v bool) {
	switch t {
	case ToggleDeprecated:
		q.Deprecated = v
	case ToggleOperators:
		q.Operators = v
	case ToggleVerifiedPublisher:
		q.VerifiedPublisher = v
	case ToggleOfficial:
		q.Official = v
	}
}

// Page returns the page number, treating unset as 1
func (q SearchQuery) Page() int {
	if q.PageNumber < 1 {
		return 1
	}
	return q.PageNumber
}

// HasFilters reports whether anything narrows the search besides the text
func (q SearchQuery) HasFilters() bool {
	c := Canonicalize(q)
	return len(c.Filters) > 0 || len(c.TextQueryTokens) > 0 ||
		c.Deprecated || c.Operators || c.VerifiedPublisher || c.Official
}

// Canonicalize returns the normal form of q: sets sorted and deduplicated,
// kinds as numeric ids, empty values and unknown facets dropped, page at
// least 1. Filters is never nil.
func Canonicalize(q SearchQuery) SearchQuery {
	out := SearchQuery{
		TextQuery:         q.TextQuery,
		TextQueryTokens:   normalizeSet(q.TextQueryTokens),
		PageNumber:        q.Page(),
		Filters:           make(map[string][]string),
		Deprecated:        q.Deprecated,
		Operators:         q.Operators,
		VerifiedPublisher: q.VerifiedPublisher,
		Official:          q.Official,
	}
	for key, values := range q.Filters {
		if !IsFacetKey(key) {
			continue
		}
		if key == FacetKind {
			values = kindIDs(values)
		}
		if set := normalizeSet(values); set != nil {
			out.Filters[key] = set
		}
	}
	return out
}

// kindIDs rewrites kind slugs and names to their numeric ids. Unknown values
// are kept as given.
func kindIDs(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if k, ok := domain.ParseRepositoryKind(v); ok {
			out[i] = k.ID()
		} else {
			out[i] = v
		}
	}
	return out
}

func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Encode renders q as a deterministic query string without the leading "?"
func Encode(q SearchQuery) string {
	c := Canonicalize(q)
	v := url.Values{}
	if c.TextQuery != "" {
		v.Set(KeyTextQueryWeb, c.TextQuery)
	}
	if len(c.TextQueryTokens) > 0 {
		v[KeyTextQuery] = c.TextQueryTokens
	}
	if c.PageNumber > 1 {
		v.Set(KeyPage, strconv.Itoa(c.PageNumber))
	}
	for key, values := range c.Filters {
		v[key] = values
	}
	for _, t := range Toggles {
		if c.Toggled(t) {
			v.Set(t.Key(), "true")
		}
	}
	// url.Values.Encode sorts by key
	return v.Encode()
}

// Decode parses a query string. It never fails: malformed pairs are
// skipped, unknown keys ignored and bad page numbers replaced with 1.
func Decode(raw string) SearchQuery {
	raw = strings.TrimPrefix(raw, "?")
	v, err := url.ParseQuery(raw)
	if err != nil {
		logger.Debugf("partially decoded query %q: %v", raw, err)
	}

	q := SearchQuery{
		TextQuery:       v.Get(KeyTextQueryWeb),
		TextQueryTokens: v[KeyTextQuery],
		PageNumber:      1,
		Filters:         make(map[string][]string),
	}
	if p := v.Get(KeyPage); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 1 {
			q.PageNumber = n
		}
	}
	for _, key := range FacetKeys {
		if values, ok := v[key]; ok {
			q.Filters[key] = values
		}
	}
	for _, t := range Toggles {
		if b, err := strconv.ParseBool(v.Get(t.Key())); err == nil && b {
			q.setToggle(t, true)
		}
	}
	return Canonicalize(q)
}

// Equal reports whether a and b describe the same search
func Equal(a, b SearchQuery) bool {
	return reflect.DeepEqual(Canonicalize(a), Canonicalize(b))
}

// SearchURL returns the search route for q
func SearchURL(q SearchQuery) string {
	if enc := Encode(q); enc != "" {
		return SearchPath + "?" + enc
	}
	return SearchPath
}
