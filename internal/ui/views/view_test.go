package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hubgrip/internal/domain"
)

func samplePackages(n int) []domain.Package {
	pkgs := make([]domain.Package, n)
	for i := range pkgs {
		pkgs[i] = domain.Package{
			Name:        "redis-" + string(rune('a'+i)),
			Description: "In-memory store",
			Repository:  domain.Repository{Name: "bitnami", Kind: domain.KindHelm, OrganizationName: "bitnami"},
		}
	}
	return pkgs
}

func TestRenderSearchShowsSummaryAndScrollIndicators(t *testing.T) {
	r := NewRenderer(true)
	out := r.Render(ViewState{
		Width:  120,
		Height: 60,
		Search: SearchState{
			Summary:        `1 - 5 of 5 results for "redis"`,
			TextQuery:      "redis",
			Packages:       samplePackages(5),
			Cursor:         2,
			ViewportOffset: 1,
			ViewportHeight: 2,
			Page:           1,
			PageCount:      1,
			Limit:          20,
		},
	})

	assert.Contains(t, out, `1 - 5 of 5 results for "redis"`)
	assert.Contains(t, out, "1 more above")
	assert.Contains(t, out, "2 more below")
	assert.Contains(t, out, "redis-b")
	assert.NotContains(t, out, "redis-a")
	assert.Contains(t, out, "bitnami / bitnami")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer(false)

	out := r.Render(ViewState{Width: 100, Height: 30, Search: SearchState{TextQuery: "nothing", Packages: []domain.Package{}}})
	assert.Contains(t, out, `match your search for "nothing"`)

	out = r.Render(ViewState{Width: 100, Height: 30, Search: SearchState{Loading: true}})
	assert.Contains(t, out, "Searching packages...")
	assert.Contains(t, out, "searching...")

	out = r.Render(ViewState{Width: 100, Height: 30, Search: SearchState{Error: "An error occurred", Packages: []domain.Package{}}})
	assert.Contains(t, out, "An error occurred")
	assert.NotContains(t, out, "We're sorry")
}

func TestSidebarHiddenWhenFacetsEmpty(t *testing.T) {
	r := NewRenderer(false)
	facets := []domain.Facet{{Title: "Kind", FilterKey: "kind"}}

	out := r.Render(ViewState{Width: 100, Height: 30, ShowFacets: true, Search: SearchState{Packages: samplePackages(1), Facets: facets, ViewportHeight: 3}})
	assert.NotContains(t, out, "Kind")

	facets[0].Options = []domain.FacetOption{{ID: "0", Name: "Helm charts", Total: 3}}
	out = r.Render(ViewState{
		Width: 100, Height: 30, ShowFacets: true,
		Search: SearchState{Packages: samplePackages(1), Facets: facets, ViewportHeight: 3, Selected: map[string][]string{"kind": {"0"}}},
	})
	assert.Contains(t, out, "Kind")
	assert.Contains(t, out, "[x] Helm charts (3)")
}

func TestPickerOverlay(t *testing.T) {
	r := NewRenderer(false)
	out := r.Render(ViewState{
		Width:  80,
		Height: 24,
		Search: SearchState{Packages: samplePackages(2), ViewportHeight: 3},
		Picker: &PickerState{
			Title: "Toggles",
			Items: []PickerItem{{Label: "Official", Checked: true}, {Label: "Verified publishers"}},
		},
	})

	assert.Contains(t, out, "Toggles")
	assert.Contains(t, out, "[x] Official")
	assert.Contains(t, out, "[ ] Verified publishers")
	assert.Equal(t, 24, len(strings.Split(out, "\n")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
