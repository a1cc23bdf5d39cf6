package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions
type OpenPackageAction struct{}

func (a OpenPackageAction) Type() string { return "open_package" }

type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

type LimitAction struct {
	Delta int // +1 for the next larger page size, -1 for the next smaller
}

func (a LimitAction) Type() string { return "limit" }

type ResetFiltersAction struct{}

func (a ResetFiltersAction) Type() string { return "reset_filters" }

type BrowseAllAction struct{}

func (a BrowseAllAction) Type() string { return "browse_all" }

// Picker actions, shared by the facet and toggle pickers
type PickerMoveAction struct {
	Delta int
}

func (a PickerMoveAction) Type() string { return "picker_move" }

type PickerToggleAction struct{}

func (a PickerToggleAction) Type() string { return "picker_toggle" }

type PickerClearAction struct{}

func (a PickerClearAction) Type() string { return "picker_clear" }

// History actions
type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ForwardAction struct{}

func (a ForwardAction) Type() string { return "forward" }

type ReturnToSearchAction struct{}

func (a ReturnToSearchAction) Type() string { return "return_to_search" }

// Pager actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowReadmeAction struct{}

func (a ShowReadmeAction) Type() string { return "show_readme" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
