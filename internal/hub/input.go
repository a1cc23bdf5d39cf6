package hub

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"hubgrip/internal/domain"
)

// SearchInput is a single page request against the search endpoint
type SearchInput struct {
	TextQueryWeb      string
	TextQuery         []string
	Filters           map[string][]string
	Offset            int
	Limit             int
	Deprecated        bool
	Operators         bool
	VerifiedPublisher bool
	Official          bool
}

// Values renders the input as request parameters. Kind filters are sent as
// numeric ids whatever form they were selected in.
func (in SearchInput) Values() url.Values {
	v := url.Values{}
	v.Set("facets", "true")
	v.Set("limit", strconv.Itoa(in.Limit))
	v.Set("offset", strconv.Itoa(in.Offset))
	if in.TextQueryWeb != "" {
		v.Set("ts_query_web", in.TextQueryWeb)
	}
	for _, t := range in.TextQuery {
		v.Add("ts_query", t)
	}
	keys := make([]string, 0, len(in.Filters))
	for k := range in.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, value := range in.Filters[k] {
			if k == "kind" {
				if kind, ok := domain.ParseRepositoryKind(value); ok {
					value = kind.ID()
				}
			}
			v.Add(k, value)
		}
	}
	flags := []struct {
		key string
		on  bool
	}{
		{"deprecated", in.Deprecated},
		{"operators", in.Operators},
		{"verified_publisher", in.VerifiedPublisher},
		{"official", in.Official},
	}
	for _, f := range flags {
		if f.on {
			v.Set(f.key, "true")
		}
	}
	return v
}

// Key identifies the input for caching
func (in SearchInput) Key() string {
	v := in.Values()
	for k, values := range v {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		v[k] = sorted
	}
	return v.Encode()
}

// WithOffset returns a copy of the input for another page
func (in SearchInput) WithOffset(offset int) SearchInput {
	in.Offset = offset
	return in
}

// String is used in logs
func (in SearchInput) String() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strconv.Quote(in.TextQueryWeb))
	b.WriteString(" offset=")
	b.WriteString(strconv.Itoa(in.Offset))
	b.WriteString(" limit=")
	b.WriteString(strconv.Itoa(in.Limit))
	return b.String()
}
