package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/config"
	"hubgrip/internal/domain"
	"hubgrip/internal/history"
	"hubgrip/internal/hub"
	"hubgrip/internal/search"
	"hubgrip/internal/ui/views"
)

type fakeSearcher struct {
	mu     sync.Mutex
	total  int
	facets []domain.Facet
	calls  []hub.SearchInput
}

func (s *fakeSearcher) SearchPackages(ctx context.Context, in hub.SearchInput) (*domain.SearchResults, error) {
	s.mu.Lock()
	s.calls = append(s.calls, in)
	s.mu.Unlock()

	res := &domain.SearchResults{
		Packages: []domain.Package{},
		Facets:   s.facets,
		Metadata: domain.Metadata{Offset: in.Offset, Total: s.total, Limit: in.Limit},
	}
	for i := in.Offset; i < in.Offset+in.Limit && i < s.total; i++ {
		name := fmt.Sprintf("pkg-%d", i)
		res.Packages = append(res.Packages, domain.Package{
			PackageID:      name,
			Name:           name,
			NormalizedName: name,
			Version:        "1.0.0",
			Repository:     domain.Repository{Name: "repo", Kind: domain.KindHelm, URL: "https://charts.example.com"},
		})
	}
	return res, nil
}

// fetches counts the requests made for the page at offset
func (s *fakeSearcher) fetches(offset int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Offset == offset {
			n++
		}
	}
	return n
}

func (s *fakeSearcher) last() hub.SearchInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

type fakeFetcher struct {
	err error
}

func (f *fakeFetcher) GetPackage(ctx context.Context, kind domain.RepositoryKind, repoName, packageName string) (*domain.Package, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Package{
		PackageID:      packageName,
		Name:           packageName,
		NormalizedName: packageName,
		Version:        "1.0.0",
		Readme:         "# " + packageName,
		Repository:     domain.Repository{Name: repoName, Kind: kind, URL: "https://charts.example.com"},
	}, nil
}

func newTestModel(t *testing.T, s *fakeSearcher, f *fakeFetcher, start string) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	m := NewModel(nil, cfg, s, f, history.ParseLocation(start))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 10 + 3*3}) // three results fit
	drain(t, m, m.Init())
	return m
}

// run executes cmd, giving up on commands that wait for a timer
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// drain feeds the messages produced by cmd back into m until nothing is left
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := run(c)
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func TestInitLoadsFirstPage(t *testing.T) {
	s := &fakeSearcher{total: 45}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	assert.Equal(t, search.Settled, m.controller.Phase())
	assert.Len(t, m.controller.Results().Packages, 20)
	assert.Equal(t, views.ScreenSearch, m.screen)
	assert.Equal(t, 1, m.history.Len())
	assert.Equal(t, 1, s.fetches(20), "next page is prefetched")

	out := m.View()
	assert.Contains(t, out, "1 - 20 of 45 results")
	assert.Contains(t, out, "pkg-0")
}

func TestPagingPushesAndBackPops(t *testing.T) {
	s := &fakeSearcher{total: 45}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	press(t, m, "n")
	assert.Equal(t, 2, m.controller.Query().Page())
	assert.Equal(t, 2, m.history.Len())
	assert.Equal(t, "/packages/search?page=2", m.history.Current().String())

	press(t, m, "esc")
	assert.Equal(t, 1, m.controller.Query().Page())
	assert.True(t, m.history.CanGoForward())

	press(t, m, "L")
	assert.Equal(t, 2, m.controller.Query().Page())
}

func TestLimitChangeReplacesHistoryEntry(t *testing.T) {
	s := &fakeSearcher{total: 100}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	press(t, m, "n")
	require.Equal(t, 2, m.history.Len())

	press(t, m, "+")
	assert.Equal(t, 40, m.controller.Limit())
	assert.Equal(t, 2, m.history.Len(), "limit changes replace the current entry")
	assert.Equal(t, "/packages/search", m.history.Current().String())
	assert.Equal(t, 40, s.last().Limit)
	assert.Equal(t, 0, m.navigator.Offset())
}

func TestOpenPackageAndReturnRestoresScroll(t *testing.T) {
	s := &fakeSearcher{total: 45}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	press(t, m, "j", "j", "j", "j", "j")
	require.Equal(t, 5, m.navigator.GetCursor())
	offset := m.navigator.Offset()
	require.Equal(t, 3, offset)

	press(t, m, "enter")
	assert.Equal(t, views.ScreenDetail, m.screen)
	require.NotNil(t, m.detail.Package)
	assert.Equal(t, "pkg-5", m.detail.Package.Name)
	assert.Equal(t, "/packages/helm/repo/pkg-5", m.history.Current().Path)
	assert.Contains(t, m.detail.PURL, "pkg:helm/repo/pkg-5@1.0.0")
	assert.NotEmpty(t, m.detail.Methods)
	assert.Contains(t, m.View(), "helm repo add")

	press(t, m, "b")
	assert.Equal(t, views.ScreenSearch, m.screen)
	assert.True(t, m.history.Current().FromDetail)
	assert.Equal(t, offset, m.navigator.Offset())
	assert.Equal(t, 1, s.fetches(0), "returning to the same search does not refetch")
}

func TestTextSearchKeepsFilters(t *testing.T) {
	s := &fakeSearcher{total: 5}
	m := newTestModel(t, s, &fakeFetcher{}, "/packages/search?official=true")

	press(t, m, "/", "r", "e", "d", "i", "s", "enter")
	q := m.controller.Query()
	assert.Equal(t, "redis", q.TextQuery)
	assert.True(t, q.Official)
	assert.Equal(t, "redis", s.last().TextQueryWeb)
}

func TestFacetPickerSelectsFilter(t *testing.T) {
	s := &fakeSearcher{total: 5, facets: []domain.Facet{{
		Title:     "Kind",
		FilterKey: "kind",
		Options:   []domain.FacetOption{{ID: "0", Name: "Helm charts", Total: 5}},
	}}}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	press(t, m, "f")
	picker := m.pickerState()
	require.NotNil(t, picker)
	assert.Equal(t, 1, picker.Cursor, "cursor skips the facet header")

	press(t, m, " ")
	assert.Equal(t, []string{"0"}, m.controller.Query().Filters["kind"])
	assert.Equal(t, "/packages/search?kind=0", m.history.Current().String())
	assert.True(t, m.pickerState().Items[1].Checked)

	press(t, m, "c")
	assert.Empty(t, m.controller.Query().Filters["kind"])

	press(t, m, "esc")
	assert.Nil(t, m.pickerState())
}

func TestTogglePickerFlipsAndClears(t *testing.T) {
	s := &fakeSearcher{total: 5}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	press(t, m, "t", " ")
	assert.True(t, m.controller.Query().Official)
	assert.True(t, s.last().Official)

	press(t, m, "j", " ")
	assert.True(t, m.controller.Query().VerifiedPublisher)

	press(t, m, "c")
	assert.False(t, m.controller.Query().Official)
	assert.False(t, m.controller.Query().VerifiedPublisher)
}

func TestPackageNotFound(t *testing.T) {
	f := &fakeFetcher{err: errors.Wrap(hub.ErrNotFound, "get package")}
	m := newTestModel(t, &fakeSearcher{}, f, "/packages/helm/repo/missing")

	assert.Equal(t, views.ScreenDetail, m.screen)
	assert.Equal(t, packageNotFoundMessage, m.detail.Error)
	assert.Contains(t, m.View(), packageNotFoundMessage)
}

func TestPackageErrorIsGeneric(t *testing.T) {
	f := &fakeFetcher{err: errors.Wrap(hub.ErrUpstreamDown, "get package")}
	m := newTestModel(t, &fakeSearcher{}, f, "/packages/helm/repo/redis")

	assert.Equal(t, packageErrorMessage, m.detail.Error)
}

func TestStalePackageIsDropped(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{}, &fakeFetcher{}, "/packages/helm/repo/redis")
	require.NotNil(t, m.detail.Package)

	m.Update(packageLoadedMsg{seq: m.detailSeq - 1, path: "/packages/helm/repo/other", err: hub.ErrNotFound})
	assert.Empty(t, m.detail.Error)
	assert.Equal(t, "redis", m.detail.Package.Name)
}

func TestLimitFromReloadedConfig(t *testing.T) {
	s := &fakeSearcher{total: 100}
	m := newTestModel(t, s, &fakeFetcher{}, "")

	_, cmd := m.Update(EventMsg{Event: config.LoadedEvent(&config.Config{Search: config.SearchSettings{Limit: 60}})})
	drain(t, m, cmd)
	assert.Equal(t, 60, m.controller.Limit())
	assert.Equal(t, 60, s.last().Limit)
}

func TestHelpWithoutProgramReportsStatus(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{}, &fakeFetcher{}, "")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.NotNil(t, cmd)
	msg := run(cmd)
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if pm, ok := run(c).(pagerMsg); ok {
				msg = pm
			}
		}
	}
	require.IsType(t, pagerMsg{}, msg)

	m.Update(msg)
	assert.Equal(t, "Could not open the help", m.eventHandler.Status())
}

func TestUnknownRouteSetsStatus(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{}, &fakeFetcher{}, "/nowhere")
	assert.True(t, strings.HasPrefix(m.eventHandler.Status(), "Page not found"))
}

func TestStepLimit(t *testing.T) {
	assert.Equal(t, 40, stepLimit(20, 1))
	assert.Equal(t, 60, stepLimit(40, 1))
	assert.Equal(t, 60, stepLimit(60, 1))
	assert.Equal(t, 20, stepLimit(20, -1))
	assert.Equal(t, 40, stepLimit(60, -1))
}
