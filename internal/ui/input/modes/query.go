package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"hubgrip/internal/ui/input/types"
)

type QueryMode struct {
	TextInputMode
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{
		TextInputMode: NewTextInputMode(types.ModeQuery, "search", "Search packages: ", ti),
	}
}
