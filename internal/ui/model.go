package ui

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/config"
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/history"
	"hubgrip/internal/hub"
	"hubgrip/internal/install"
	"hubgrip/internal/log"
	"hubgrip/internal/query"
	"hubgrip/internal/search"
	"hubgrip/internal/ui/handlers"
	"hubgrip/internal/ui/input"
	inputtypes "hubgrip/internal/ui/input/types"
	"hubgrip/internal/ui/services/navigation"
	"hubgrip/internal/ui/viewmodels"
	"hubgrip/internal/ui/views"
)

var logger = log.ForService("ui")

const (
	packageNotFoundMessage = "Sorry, the package you requested was not found."
	packageErrorMessage    = "An error occurred getting this package, please try again later."
)

// PackageFetcher loads a single package page
type PackageFetcher interface {
	GetPackage(ctx context.Context, kind domain.RepositoryKind, repoName, packageName string) (*domain.Package, error)
}

// Model represents the UI state. It is the router: it owns the history and
// decides which view a location shows.
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	packages PackageFetcher

	// UI-specific state
	width        int
	height       int
	screen       views.Screen
	inPagerMode  bool // tracks if we're currently in pager mode
	ready        bool
	pickerCursor int
	fetchTimeout time.Duration

	history    *history.History
	controller *search.Controller
	navigator  *navigation.Service

	detail       views.DetailState
	detailSeq    uint64
	detailCancel context.CancelFunc

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model starting at start. An empty start opens
// the unfiltered search.
func NewModel(bus eventbus.EventBus, cfg *config.Config, searcher hub.Searcher, packages PackageFetcher, start history.Location) *Model {
	if start.Path == "" {
		start = history.ParseLocation(query.SearchURL(query.BrowseAll()))
	}

	timeout := fetchTimeout(cfg)
	navigator := navigation.NewService()
	controller := search.NewController(searcher, cfg.Search.Limit,
		search.WithBus(bus),
		search.WithViewport(navigator),
		search.WithTimeout(timeout),
	)

	m := &Model{
		bus:          bus,
		config:       cfg,
		packages:     packages,
		fetchTimeout: timeout,
		history:      history.New(start),
		controller:   controller,
		navigator:    navigator,
		renderer:     views.NewRenderer(cfg.UISettings.ShowDescriptions),
		eventHandler: handlers.NewEventHandler(controller),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPager(),
	}
	m.viewModel = viewmodels.NewViewModel(controller, navigator, cfg)
	return m
}

// fetchTimeout bounds one fetch including the transport's retries
func fetchTimeout(cfg *config.Config) time.Duration {
	if cfg.Timeout.Duration <= 0 {
		return 30 * time.Second
	}
	attempts := time.Duration(cfg.MaxRetries + 1)
	return cfg.Timeout.Duration*attempts + 2*time.Second
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init routes to the start location
func (m *Model) Init() tea.Cmd {
	return m.route(m.history.Current(), history.Push)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.navigator.SetViewportHeight(msg.Height)
		if !m.ready {
			m.ready = true
			if m.bus != nil {
				m.bus.Publish(eventbus.AppReadyEvent{})
			}
		}
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case search.NavigateMsg:
		return m, m.navigate(msg)

	case packageLoadedMsg:
		m.packageLoaded(msg)
		return m, nil

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.ClearStatusMsg:
		m.eventHandler.ClearStatus(msg)
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			logger.Warnf("%s pager failed: %v", msg.what, msg.err)
			return m, m.eventHandler.SetStatus("Could not open the " + msg.what)
		}
		// Pager succeeded, RestoreTerminal() should have restored the screen
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case quitMsg:
		m.cancelDetail()
		return m, tea.Quit

	default:
		// Blink messages for the text input, fetch results and intents
		// produced by commands
		return m, tea.Batch(m.inputHandler.Update(msg), m.updateController(msg))
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetScreen(m.screen)
	m.viewModel.SetDetail(m.detail)
	m.viewModel.SetPicker(m.pickerState())
	m.viewModel.SetStatus(m.eventHandler.Status())
	m.viewModel.SetInput(m.inputHandler.Prompt(), m.inputHandler.TextInput())
	if m.screen == views.ScreenDetail {
		m.viewModel.SetHelp(detailKeys(m.detail.Package != nil && m.detail.Package.Readme != ""))
	} else {
		m.viewModel.SetHelp(searchKeys(m.history.CanGoBack(), m.controller.Query().HasFilters()))
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// updateController forwards msg to the search controller and keeps the
// list length of the navigator in sync with the results
func (m *Model) updateController(msg tea.Msg) tea.Cmd {
	cmd := m.controller.Update(msg)
	m.navigator.SetItemCount(len(m.controller.Results().Packages))
	return cmd
}

// navigate records msg in the history and shows its location
func (m *Model) navigate(msg search.NavigateMsg) tea.Cmd {
	action := history.Push
	if msg.Replace {
		action = history.Replace
		m.history.Replace(msg.Location)
	} else {
		m.history.Push(msg.Location)
	}
	logger.Debugf("%s %s", action, msg.Location)
	return m.route(msg.Location, action)
}

// route shows loc, reached through action
func (m *Model) route(loc history.Location, action history.Action) tea.Cmd {
	if isSearchRoute(loc) {
		m.screen = views.ScreenSearch
		m.cancelDetail()
		return m.updateController(search.LocationChanged{
			Query:      query.Decode(loc.RawQuery),
			Action:     action,
			FromDetail: loc.FromDetail,
		})
	}

	if ref, ok := parsePackageRoute(loc); ok {
		m.screen = views.ScreenDetail
		return m.loadPackage(loc.Path, ref)
	}

	logger.Warnf("no view for %s", loc)
	return m.eventHandler.SetStatus("Page not found: " + loc.String())
}

func (m *Model) loadPackage(path string, ref install.Ref) tea.Cmd {
	if m.detail.Path == path && m.detail.Package != nil {
		return nil
	}
	m.cancelDetail()
	m.detailSeq++
	seq := m.detailSeq
	m.detail = views.DetailState{Loading: true, Path: path}

	ctx, cancel := context.WithTimeout(context.Background(), m.fetchTimeout)
	m.detailCancel = cancel
	fetcher := m.packages

	return func() tea.Msg {
		defer cancel()
		pkg, err := fetcher.GetPackage(ctx, ref.Kind, ref.Repository, ref.Name)
		return packageLoadedMsg{seq: seq, path: path, pkg: pkg, err: err}
	}
}

func (m *Model) cancelDetail() {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
}

func (m *Model) packageLoaded(msg packageLoadedMsg) {
	if msg.seq != m.detailSeq {
		logger.Debugf("dropping stale package %s", msg.path)
		return
	}
	m.detailCancel = nil

	if msg.err != nil {
		logger.Errorf("loading %s: %v", msg.path, msg.err)
		text := packageErrorMessage
		if errors.Is(msg.err, hub.ErrNotFound) {
			text = packageNotFoundMessage
		}
		m.detail = views.DetailState{Path: msg.path, Error: text}
		return
	}

	pkg := msg.pkg
	m.detail = views.DetailState{
		Path:    msg.path,
		Package: pkg,
		PURL:    install.PURL(*pkg),
		Methods: install.Methods(*pkg),
	}
}

func (m *Model) inputContext() *input.ModelContext {
	q := m.controller.Query()
	view := inputtypes.ViewSearch
	if m.screen == views.ScreenDetail {
		view = inputtypes.ViewDetail
	}
	return &input.ModelContext{
		View:     view,
		Items:    len(m.controller.Results().Packages),
		Page:     q.Page(),
		Pages:    m.controller.PageCount(),
		Back:     m.history.CanGoBack(),
		Forward:  m.history.CanGoForward(),
		Filtered: q.HasFilters(),
		Text:     q.TextQuery,
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeFacets || a.Mode == inputtypes.ModeToggles {
			m.pickerCursor = -1
			m.movePicker(1)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeQuery {
			return m.updateController(search.TextQuerySubmitted{Text: strings.TrimSpace(a.Text)})
		}

	case inputtypes.OpenPackageAction:
		packages := m.controller.Results().Packages
		i := m.navigator.GetCursor()
		if i < 0 || i >= len(packages) {
			return nil
		}
		pkg := packages[i]
		return m.updateController(search.PackageOpened{PackageID: pkg.PackageID, Path: packagePath(pkg)})

	case inputtypes.PageAction:
		return m.updateController(search.PageChanged{Page: m.controller.Query().Page() + a.Delta})

	case inputtypes.LimitAction:
		limit := stepLimit(m.controller.Limit(), a.Delta)
		return m.updateController(search.LimitChanged{Limit: limit})

	case inputtypes.ResetFiltersAction:
		return m.updateController(search.QueryReset{})

	case inputtypes.BrowseAllAction:
		return m.updateController(search.BrowseAll{})

	case inputtypes.PickerMoveAction:
		m.movePicker(a.Delta)

	case inputtypes.PickerToggleAction:
		return m.togglePicker()

	case inputtypes.PickerClearAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeToggles {
			return m.updateController(search.TogglesCleared{})
		}
		return m.updateController(search.FiltersReset{Keys: query.FacetKeys})

	case inputtypes.BackAction:
		if loc, ok := m.history.Back(); ok {
			return m.route(loc, history.Pop)
		}

	case inputtypes.ForwardAction:
		if loc, ok := m.history.Forward(); ok {
			return m.route(loc, history.Pop)
		}

	case inputtypes.ReturnToSearchAction:
		return m.updateController(search.ReturnToSearch{})

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", m.helpRenderer.RenderHelpContentPlain())

	case inputtypes.ShowReadmeAction:
		if pkg := m.detail.Package; pkg != nil && pkg.Readme != "" {
			return m.showInPager("README", pkg.Readme)
		}

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }
	}

	return nil
}

// stepLimit returns the allowed page size delta steps away from current
func stepLimit(current, delta int) int {
	idx := 0
	for i, l := range domain.AllowedLimits {
		if l == current {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(domain.AllowedLimits) {
		idx = len(domain.AllowedLimits) - 1
	}
	return domain.AllowedLimits[idx]
}

// showInPager returns a command that shows content using ov pager
func (m *Model) showInPager(what, content string) tea.Cmd {
	program := m.program
	pager := m.pager
	return func() tea.Msg {
		if program == nil {
			return pagerMsg{what: what, err: errors.New("program not set")}
		}
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return pagerMsg{what: what, err: err}
	}
}
