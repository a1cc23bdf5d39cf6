package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/domain"
	"hubgrip/internal/history"
	"hubgrip/internal/hub"
	"hubgrip/internal/query"
)

func TestStartLocation(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		purl string
		want history.Location
	}{
		{"empty", "", "", history.Location{}},
		{"free text", "redis", "", history.Location{Path: query.SearchPath, RawQuery: "page=1&ts_query_web=redis"}},
		{"query string", "ts_query_web=redis&kind=0", "", history.Location{Path: query.SearchPath, RawQuery: "kind=0&page=1&ts_query_web=redis"}},
		{"route", "/packages/helm/bitnami/redis", "", history.Location{Path: "/packages/helm/bitnami/redis"}},
		{"hub url", "https://artifacthub.io/packages/search?page=2", "", history.Location{Path: "/packages/search", RawQuery: "page=2"}},
		{"purl wins", "redis", "pkg:helm/bitnami/redis@17.0.1", history.Location{Path: "/packages/helm/bitnami/redis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := startLocation(tt.arg, tt.purl)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Path, got.Path)
			if tt.want.RawQuery != "" {
				assert.Equal(t, query.Decode(tt.want.RawQuery), query.Decode(got.RawQuery))
			} else {
				assert.Empty(t, got.RawQuery)
			}
		})
	}
}

func TestStartLocationBadPURL(t *testing.T) {
	_, err := startLocation("", "pkg:nope/x/y")
	assert.Error(t, err)
}

func TestSearchQuery(t *testing.T) {
	q, err := searchQuery("redis", []string{"helm", "falco"}, true, false)
	require.NoError(t, err)

	assert.Equal(t, "redis", q.TextQuery)
	assert.Equal(t, []string{"0", "1"}, q.Filters[query.FacetKind])
	assert.True(t, q.Official)
	assert.False(t, q.VerifiedPublisher)
}

func TestSearchQueryKeepsFlagsFromQueryString(t *testing.T) {
	q, err := searchQuery("official=true", nil, true, true)
	require.NoError(t, err)
	assert.True(t, q.Official, "flag must not flip an already set toggle off")
	assert.True(t, q.VerifiedPublisher)
}

func TestSearchQueryUnknownKind(t *testing.T) {
	_, err := searchQuery("", []string{"rpm"}, false, false)
	assert.Error(t, err)
}

type stubSearcher struct {
	got hub.SearchInput
	res *domain.SearchResults
	err error
}

func (s *stubSearcher) SearchPackages(_ context.Context, in hub.SearchInput) (*domain.SearchResults, error) {
	s.got = in
	return s.res, s.err
}

func TestSearchPackagesTable(t *testing.T) {
	s := &stubSearcher{res: &domain.SearchResults{
		Packages: []domain.Package{{
			Name:    "redis",
			Version: "17.0.1",
			Stars:   42,
			Repository: domain.Repository{
				Name: "bitnami",
				Kind: domain.KindHelm,
			},
			SecurityReportSummary: &domain.SecurityReportSummary{High: 1},
		}},
		Metadata: domain.Metadata{Offset: 20, Total: 21, Limit: 20},
	}}

	var out bytes.Buffer
	q := query.BrowseAll().WithTextQuery("redis").WithPage(2)
	require.NoError(t, searchPackages(context.Background(), s, &out, q, 20, false))

	assert.Equal(t, 20, s.got.Offset)
	assert.Equal(t, 20, s.got.Limit)
	assert.Equal(t, "redis", s.got.TextQueryWeb)

	text := out.String()
	assert.Contains(t, text, "21 - 21 of 21 results")
	assert.Contains(t, text, "bitnami/redis")
	assert.Contains(t, text, "17.0.1")
	assert.Contains(t, text, "pkg:helm/bitnami/redis@17.0.1")
	assert.Contains(t, text, " D ")
}

func TestSearchPackagesJSON(t *testing.T) {
	s := &stubSearcher{res: &domain.SearchResults{
		Packages: []domain.Package{{Name: "redis"}},
		Facets:   []domain.Facet{},
		Metadata: domain.Metadata{Total: 1, Limit: 20},
	}}

	var out bytes.Buffer
	require.NoError(t, searchPackages(context.Background(), s, &out, query.BrowseAll(), 20, true))

	var decoded domain.SearchResults
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "redis", decoded.Packages[0].Name)
}

func TestSearchPackagesEmpty(t *testing.T) {
	s := &stubSearcher{res: &domain.SearchResults{Packages: []domain.Package{}}}

	var out bytes.Buffer
	require.NoError(t, searchPackages(context.Background(), s, &out, query.BrowseAll().WithTextQuery("zzz"), 20, false))
	assert.Contains(t, out.String(), `No packages match "zzz"`)
}

func TestSearchPackagesError(t *testing.T) {
	s := &stubSearcher{err: errors.New("boom")}
	err := searchPackages(context.Background(), s, &bytes.Buffer{}, query.BrowseAll(), 20, false)
	assert.Error(t, err)
}

type stubChecker struct {
	free bool
	err  error
}

func (s stubChecker) CheckAvailability(context.Context, string, string) (bool, error) {
	return s.free, s.err
}

func TestCheckAvailability(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, checkAvailability(context.Background(), stubChecker{free: true}, &out, "repositoryName", "mine"))
	assert.Equal(t, "repositoryName \"mine\" is available\n", out.String())

	out.Reset()
	require.NoError(t, checkAvailability(context.Background(), stubChecker{}, &out, "userAlias", "taken"))
	assert.Contains(t, out.String(), "is taken")

	assert.Error(t, checkAvailability(context.Background(), stubChecker{err: errors.New("down")}, &out, "userAlias", "x"))
}
