package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/ui/input/types"
)

// PickerMode drives a checklist popup. The facet and toggle pickers only
// differ in what the model lists in them.
type PickerMode struct {
	name    string
	openKey string
}

func NewFacetMode() *PickerMode {
	return &PickerMode{name: "facets", openKey: "f"}
}

func NewToggleMode() *PickerMode {
	return &PickerMode{name: "toggles", openKey: "t"}
}

func (m *PickerMode) Name() string { return m.name }

func (m *PickerMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *PickerMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", m.openKey:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "up", "k":
		return []types.Action{types.PickerMoveAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.PickerMoveAction{Delta: 1}}, true
	case "pgup":
		return []types.Action{types.PickerMoveAction{Delta: -10}}, true
	case "pgdown":
		return []types.Action{types.PickerMoveAction{Delta: 10}}, true
	case " ", "enter", "x":
		return []types.Action{types.PickerToggleAction{}}, true
	case "c":
		return []types.Action{types.PickerClearAction{}}, true
	}
	// Swallow everything else while the popup is open
	return nil, true
}
