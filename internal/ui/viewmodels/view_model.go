package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"hubgrip/internal/config"
	"hubgrip/internal/query"
	"hubgrip/internal/search"
	"hubgrip/internal/ui/services/navigation"
	"hubgrip/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	controller       *search.Controller
	nav              *navigation.Service
	config           *config.Config
	width            int
	height           int
	help             help.Model
	keys             help.KeyMap
	screen           views.Screen
	detail           views.DetailState
	picker           *views.PickerState
	status           string
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(controller *search.Controller, nav *navigation.Service, cfg *config.Config) *ViewModel {
	return &ViewModel{
		controller:       controller,
		nav:              nav,
		config:           cfg,
		help:             help.New(),
		inputTransformer: NewInputTransformer(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetHelp sets the key bindings shown in the footer
func (vm *ViewModel) SetHelp(keys help.KeyMap) {
	vm.keys = keys
}

// SetScreen sets the route being shown
func (vm *ViewModel) SetScreen(screen views.Screen) {
	vm.screen = screen
}

// SetDetail sets the package view state
func (vm *ViewModel) SetDetail(detail views.DetailState) {
	vm.detail = detail
}

// SetPicker sets the open picker, nil when none is open
func (vm *ViewModel) SetPicker(picker *views.PickerState) {
	vm.picker = picker
}

// SetStatus sets the status line
func (vm *ViewModel) SetStatus(status string) {
	vm.status = status
}

// SetInput sets the active text input
func (vm *ViewModel) SetInput(prompt string, ti *textinput.Model) {
	vm.inputTransformer.SetInput(prompt, ti)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	state := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Screen:           vm.screen,
		Detail:           vm.detail,
		Picker:           vm.picker,
		StatusMessage:    vm.status,
		InputPrompt:      vm.inputTransformer.GetPrompt(),
		TextInput:        vm.inputTransformer.GetInputText(),
		ShowFacets:       vm.config.UISettings.ShowFacets,
		ShowDescriptions: vm.config.UISettings.ShowDescriptions,
		Search:           vm.buildSearchState(),
	}
	if vm.keys != nil {
		state.HelpLine = vm.help.View(vm.keys)
	}
	return state
}

func (vm *ViewModel) buildSearchState() views.SearchState {
	c := vm.controller
	q := c.Query()
	results := c.Results()

	var toggles []string
	for _, t := range query.Toggles {
		if q.Toggled(t) {
			toggles = append(toggles, t.Label())
		}
	}

	return views.SearchState{
		Loading:        c.IsSearching(),
		Error:          c.Err(),
		Summary:        c.Summary(),
		FiltersApplied: c.ActiveFilters() > 0,
		TextQuery:      q.TextQuery,
		Packages:       results.Packages,
		Facets:         results.Facets,
		Selected:       q.Filters,
		Toggles:        toggles,
		Cursor:         vm.nav.GetCursor(),
		ViewportOffset: vm.nav.GetViewportOffset(),
		ViewportHeight: vm.nav.GetViewportHeight(),
		Page:           q.Page(),
		PageCount:      c.PageCount(),
		Limit:          c.Limit(),
	}
}
