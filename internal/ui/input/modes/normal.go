package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// Keys shared by both views
	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "esc", "backspace", "H":
		if ctx.CanGoBack() {
			return []types.Action{types.BackAction{}}, true
		}
		return nil, true
	case "L":
		if ctx.CanGoForward() {
			return []types.Action{types.ForwardAction{}}, true
		}
		return nil, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery, Data: ctx.CurrentText()}}, true
	}

	if ctx.CurrentView() == types.ViewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleSearchKey(msg, ctx)
}

func (m *NormalMode) handleDetailKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "b":
		return []types.Action{types.ReturnToSearchAction{}}, true
	case "enter", "R":
		return []types.Action{types.ShowReadmeAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) handleSearchKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenPackageAction{}}, true
		}
		return nil, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "n", "right", "l":
		if ctx.CurrentPage() < ctx.PageCount() {
			return []types.Action{types.PageAction{Delta: 1}}, true
		}
		return nil, true
	case "p", "left", "h":
		if ctx.CurrentPage() > 1 {
			return []types.Action{types.PageAction{Delta: -1}}, true
		}
		return nil, true
	case "+", "=":
		return []types.Action{types.LimitAction{Delta: 1}}, true
	case "-", "_":
		return []types.Action{types.LimitAction{Delta: -1}}, true
	case "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFacets}}, true
	case "t":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeToggles}}, true
	case "r":
		if ctx.HasFilters() {
			return []types.Action{types.ResetFiltersAction{}}, true
		}
		return nil, true
	case "A":
		return []types.Action{types.BrowseAllAction{}}, true
	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	default:
		m.lastKeyWasG = false
	}

	return nil, false
}
