package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the footer. The input modes do the
// actual matching; these only describe them.
type keyMap struct {
	bindings []key.Binding
}

var _ help.KeyMap = keyMap{}

func (k keyMap) ShortHelp() []key.Binding { return k.bindings }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.bindings} }

var (
	keySearch  = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	keyOpen    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	keyPage    = key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "page"))
	keyLimit   = key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "page size"))
	keyFacets  = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters"))
	keyToggles = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggles"))
	keyReset   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset"))
	keyBack    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyResults = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "results"))
	keyReadme  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "readme"))
	keyHelp    = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	keyQuit    = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
)

func searchKeys(canGoBack, hasFilters bool) keyMap {
	keyBack.SetEnabled(canGoBack)
	keyReset.SetEnabled(hasFilters)
	return keyMap{bindings: []key.Binding{
		keySearch, keyOpen, keyPage, keyLimit, keyFacets, keyToggles, keyReset, keyBack, keyHelp, keyQuit,
	}}
}

func detailKeys(hasReadme bool) keyMap {
	keyReadme.SetEnabled(hasReadme)
	keyBack.SetEnabled(true)
	return keyMap{bindings: []key.Binding{keyResults, keyReadme, keyBack, keyHelp, keyQuit}}
}
