package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeOmitsDefaults(t *testing.T) {
	assert.Equal(t, "", Encode(SearchQuery{}))
	assert.Equal(t, "", Encode(SearchQuery{PageNumber: 1, Filters: map[string][]string{"kind": {}}}))
	assert.Equal(t, SearchPath, SearchURL(BrowseAll()))
}

func TestEncodeIsDeterministic(t *testing.T) {
	a := SearchQuery{
		TextQuery:       "nginx",
		TextQueryTokens: []string{"monitoring", "database", "monitoring"},
		Filters:         map[string][]string{"org": {"b", "a"}, "kind": {"0"}},
		Official:        true,
	}
	b := SearchQuery{
		TextQuery:       "nginx",
		TextQueryTokens: []string{"database", "monitoring"},
		Filters:         map[string][]string{"kind": {"0"}, "org": {"a", "b", "a"}},
		Official:        true,
	}
	assert.Equal(t, Encode(a), Encode(b))
	assert.Equal(t, "kind=0&official=true&org=a&org=b&ts_query=database&ts_query=monitoring&ts_query_web=nginx", Encode(a))
	assert.True(t, Equal(a, b))
}

func TestDecodeEndToEnd(t *testing.T) {
	q := Decode("?ts_query_web=prometheus&page=2&official=true")

	assert.Equal(t, "prometheus", q.TextQuery)
	assert.Equal(t, 2, q.PageNumber)
	assert.True(t, q.Official)
	assert.False(t, q.Deprecated)
	assert.Empty(t, q.Filters)
	assert.Equal(t, "official=true&page=2&ts_query_web=prometheus", Encode(q))
}

func TestDecodeIsTolerant(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SearchQuery
	}{
		{"empty", "", BrowseAll()},
		{"non-numeric page", "page=abc", BrowseAll()},
		{"negative page", "page=-3", BrowseAll()},
		{"zero page", "page=0", BrowseAll()},
		{"unknown keys", "foo=bar&sort=stars", BrowseAll()},
		{"false booleans", "official=false&deprecated=0", BrowseAll()},
		{"empty facet value", "kind=&org=", BrowseAll()},
		{"malformed escape keeps the rest", "ts_query_web=redis&bad=%zz&page=3",
			Canonicalize(SearchQuery{TextQuery: "redis", PageNumber: 3})},
		{"repeated facet", "kind=3&kind=0&kind=3",
			Canonicalize(SearchQuery{Filters: map[string][]string{"kind": {"0", "3"}}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			assert.Equal(t, tt.want, got)
			require.NotNil(t, got.Filters)
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	queries := []SearchQuery{
		{},
		{TextQuery: "cert manager", PageNumber: 7},
		{TextQueryTokens: []string{"z", "a", ""}, Deprecated: true, Operators: true},
		{Filters: map[string][]string{"kind": {"0", "3"}, "repo": {}, "license": {"Apache-2.0"}, "bogus": {"x"}}},
		{VerifiedPublisher: true, Official: true, PageNumber: -4},
		{TextQuery: "a&b=c", Filters: map[string][]string{"category": {"1", "1", "2"}}},
	}
	for _, q := range queries {
		assert.Equal(t, Canonicalize(q), Decode(Encode(q)), "query %+v", q)
	}
}

func TestCanonicalizeUsesKindIDs(t *testing.T) {
	assert.True(t, Equal(Decode("kind=0"), Decode("kind=Helm")))
	assert.Equal(t, "kind=0&kind=3", Encode(Decode("kind=helm&kind=Operator&kind=3")))

	c := Canonicalize(SearchQuery{Filters: map[string][]string{"kind": {"falco", "nope"}}})
	assert.Equal(t, []string{"1", "nope"}, c.Filters["kind"], "unknown kinds are kept as given")
}

func TestCanonicalizePrunesEmptySets(t *testing.T) {
	c := Canonicalize(SearchQuery{Filters: map[string][]string{"org": {""}, "user": nil}})
	assert.Empty(t, c.Filters)
	assert.Nil(t, c.TextQueryTokens)
	assert.Equal(t, 1, c.PageNumber)
}

func TestHasFilters(t *testing.T) {
	assert.False(t, SearchQuery{TextQuery: "x"}.HasFilters())
	assert.True(t, SearchQuery{Official: true}.HasFilters())
	assert.True(t, SearchQuery{Filters: map[string][]string{"kind": {"0"}}}.HasFilters())
	assert.False(t, SearchQuery{Filters: map[string][]string{"kind": {}}}.HasFilters())
}
