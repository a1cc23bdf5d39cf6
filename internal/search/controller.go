// Package search owns the lifecycle of the current package search.
//
// The controller is driven by bubbletea messages. Intents (FilterChanged,
// PageChanged, ...) never touch results: they produce a NavigateMsg, and the
// router answers with LocationChanged once history has moved. Fetches run as
// commands and come back tagged with a sequence number, so a response for a
// superseded query is dropped no matter when it arrives.
package search

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/history"
	"hubgrip/internal/hub"
	"hubgrip/internal/log"
	"hubgrip/internal/query"
)

var logger = log.ForService("search")

// ErrorMessage is shown when a search fails
const ErrorMessage = "An error occurred searching packages, please try again later."

// Phase is the state of the current search
type Phase int

const (
	Idle Phase = iota
	Fetching
	Settled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Viewport is the scrollable results list
type Viewport interface {
	Offset() int
	ScrollTo(offset int)
}

type noopViewport struct{}

func (noopViewport) Offset() int  { return 0 }
func (noopViewport) ScrollTo(int) {}

// Controller owns search results. It is not safe for concurrent use and
// must only be called from the bubbletea update loop.
type Controller struct {
	searcher hub.Searcher
	viewport Viewport
	bus      eventbus.EventBus
	limit    int
	timeout  time.Duration

	phase    Phase
	query    query.SearchQuery
	identity string
	results  domain.SearchResults
	errMsg   string

	seq    uint64
	cancel context.CancelFunc

	action      history.Action
	fromDetail  bool
	savedScroll *int
}

// Option configures a Controller
type Option func(*Controller)

// WithBus publishes search and preference events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithViewport attaches the results list
func WithViewport(v Viewport) Option {
	return func(c *Controller) {
		if v != nil {
			c.viewport = v
		}
	}
}

// WithTimeout bounds every fetch
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewController creates a controller fetching pages of limit packages
func NewController(searcher hub.Searcher, limit int, opts ...Option) *Controller {
	if !domain.ValidLimit(limit) {
		limit = domain.DefaultLimit
	}
	c := &Controller{
		searcher: searcher,
		viewport: noopViewport{},
		limit:    limit,
		timeout:  30 * time.Second,
		query:    query.BrowseAll(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update handles intents, route changes and fetch completions
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FilterChanged:
		return c.navigate(c.query.WithFilterToggled(msg.Name, msg.Value, msg.Checked), false)
	case FiltersReset:
		return c.navigate(c.query.WithFiltersReset(msg.Keys...), false)
	case TokenToggled:
		return c.navigate(c.query.WithTokenToggled(msg.Value, msg.Checked), false)
	case ToggleFlipped:
		return c.navigate(c.query.WithToggleFlipped(msg.Toggle), false)
	case TogglesCleared:
		return c.navigate(c.query.WithTogglesCleared(), false)
	case TextQuerySubmitted:
		return c.navigate(c.query.WithTextQuery(msg.Text), false)
	case QueryReset:
		return c.navigate(c.query.Reset(), false)
	case BrowseAll:
		return c.navigate(query.BrowseAll(), false)
	case PageChanged:
		return c.navigate(c.query.WithPage(msg.Page), false)
	case LimitChanged:
		return c.changeLimit(msg.Limit)
	case PackageOpened:
		offset := c.viewport.Offset()
		c.savedScroll = &offset
		logger.Debugf("leaving results at offset %d for %s", offset, msg.Path)
		return navigateTo(history.ParseLocation(msg.Path), false)
	case ReturnToSearch:
		loc := history.ParseLocation(query.SearchURL(c.query))
		loc.FromDetail = true
		return navigateTo(loc, false)
	case LocationChanged:
		return c.locationChanged(msg)
	case searchResultMsg:
		return c.searchCompleted(msg)
	case prefetchResultMsg:
		if msg.err != nil {
			logger.Debugf("prefetch failed (%s): %v", msg.in, msg.err)
		}
		return nil
	}
	return nil
}

func (c *Controller) navigate(q query.SearchQuery, replace bool) tea.Cmd {
	return navigateTo(history.ParseLocation(query.SearchURL(q)), replace)
}

func navigateTo(loc history.Location, replace bool) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Location: loc, Replace: replace}
	}
}

func (c *Controller) changeLimit(limit int) tea.Cmd {
	if !domain.ValidLimit(limit) {
		logger.Warnf("ignoring unsupported page size %d", limit)
		return nil
	}
	if limit == c.limit {
		return nil
	}

	zero := 0
	c.savedScroll = &zero
	c.viewport.ScrollTo(0)

	// a response still in flight was sized for the old limit
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++

	old := c.limit
	c.limit = limit
	if c.bus != nil {
		c.bus.Publish(eventbus.LimitChangedEvent{Old: old, New: limit})
	}
	return c.navigate(c.query.WithPage(1), true)
}

func (c *Controller) locationChanged(msg LocationChanged) tea.Cmd {
	c.action = msg.Action
	c.fromDetail = msg.FromDetail

	q := query.Canonicalize(msg.Query)
	id := identity(q, c.limit)
	if c.phase != Idle && id == c.identity {
		if c.phase == Settled || c.phase == Failed {
			c.applyScroll()
		}
		return nil
	}
	return c.startFetch(q, id)
}

func identity(q query.SearchQuery, limit int) string {
	return query.Encode(q) + "#limit=" + strconv.Itoa(limit)
}

func (c *Controller) input(q query.SearchQuery, offset int) hub.SearchInput {
	return Input(q, c.limit, offset)
}

// Input builds the request for one page of q
func Input(q query.SearchQuery, limit, offset int) hub.SearchInput {
	return hub.SearchInput{
		TextQueryWeb:      q.TextQuery,
		TextQuery:         q.TextQueryTokens,
		Filters:           q.Filters,
		Offset:            offset,
		Limit:             limit,
		Deprecated:        q.Deprecated,
		Operators:         q.Operators,
		VerifiedPublisher: q.VerifiedPublisher,
		Official:          q.Official,
	}
}

func (c *Controller) startFetch(q query.SearchQuery, id string) tea.Cmd {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq

	c.phase = Fetching
	c.query = q
	c.identity = id
	c.results.Packages = nil
	c.errMsg = ""

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel

	in := c.input(q, (q.Page()-1)*c.limit)
	searcher := c.searcher
	logger.Debugf("fetch #%d (%s)", seq, in)

	return func() tea.Msg {
		defer cancel()
		res, err := searcher.SearchPackages(ctx, in)
		return searchResultMsg{seq: seq, in: in, results: res, err: err}
	}
}

func (c *Controller) searchCompleted(msg searchResultMsg) tea.Cmd {
	if msg.seq != c.seq || c.phase != Fetching {
		logger.Debugf("dropping stale response #%d (current #%d)", msg.seq, c.seq)
		return nil
	}
	c.cancel = nil

	var cmd tea.Cmd
	if msg.err != nil {
		logger.Errorf("search failed (%s): %v", msg.in, msg.err)
		c.phase = Failed
		c.errMsg = ErrorMessage
		c.results = domain.SearchResults{
			Packages: []domain.Package{},
			Facets:   []domain.Facet{},
		}
		if c.bus != nil {
			c.bus.Publish(eventbus.SearchFailedEvent{Query: query.Encode(c.query), Err: msg.err})
		}
	} else {
		if msg.results == nil {
			msg.results = &domain.SearchResults{}
		}
		next := *msg.results
		if next.Packages == nil {
			next.Packages = []domain.Package{}
		}
		if next.Facets == nil {
			next.Facets = []domain.Facet{}
		}
		if next.Metadata.Total == 0 && len(c.results.Facets) > 0 {
			next.Facets = c.results.Facets
		}
		c.phase = Settled
		c.results = next
		if c.bus != nil {
			c.bus.Publish(eventbus.SearchCompletedEvent{Query: query.Encode(c.query), Total: next.Metadata.Total})
		}
		cmd = c.prefetch()
	}

	c.applyScroll()
	return cmd
}

// prefetch warms the cache with the following page when there is one
func (c *Controller) prefetch() tea.Cmd {
	meta := c.results.Metadata
	if meta.Total <= c.limit+meta.Offset {
		return nil
	}
	in := c.input(c.query, c.query.Page()*c.limit)
	searcher := c.searcher
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := searcher.SearchPackages(ctx, in)
		return prefetchResultMsg{in: in, err: err}
	}
}

func (c *Controller) applyScroll() {
	switch {
	case c.action == history.Push && c.fromDetail && c.savedScroll != nil:
		c.viewport.ScrollTo(*c.savedScroll)
	case c.action == history.Push:
		c.viewport.ScrollTo(0)
	case c.savedScroll != nil:
		c.viewport.ScrollTo(*c.savedScroll)
	}
}

// Phase returns the state of the current search
func (c *Controller) Phase() Phase { return c.phase }

// Query returns the current query
func (c *Controller) Query() query.SearchQuery { return c.query }

// Limit returns the page size
func (c *Controller) Limit() int { return c.limit }

// Results returns the visible results
func (c *Controller) Results() domain.SearchResults { return c.results }

// Err returns the user-facing error message, if any
func (c *Controller) Err() string { return c.errMsg }

// IsSearching reports whether a fetch for the current query is in flight
func (c *Controller) IsSearching() bool { return c.phase == Fetching }

// SavedScroll returns the offset remembered when a package was opened
func (c *Controller) SavedScroll() (int, bool) {
	if c.savedScroll == nil {
		return 0, false
	}
	return *c.savedScroll, true
}

// ActiveFilters counts selected facet values, tokens and toggles
func (c *Controller) ActiveFilters() int {
	n := len(c.query.TextQueryTokens)
	for _, values := range c.query.Filters {
		n += len(values)
	}
	for _, t := range query.Toggles {
		if c.query.Toggled(t) {
			n++
		}
	}
	return n
}
