package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hubgrip/internal/domain"
	"hubgrip/internal/install"
)

// Screen is the route being rendered
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
)

// SearchState is everything the search view renders
type SearchState struct {
	Loading        bool
	Error          string
	Summary        string
	FiltersApplied bool
	TextQuery      string
	Packages       []domain.Package
	Facets         []domain.Facet
	Selected       map[string][]string
	Toggles        []string
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	Page           int
	PageCount      int
	Limit          int
}

// DetailState is everything the package view renders
type DetailState struct {
	Loading bool
	Error   string
	Path    string
	Package *domain.Package
	PURL    string
	Methods []install.Method
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Screen           Screen
	Search           SearchState
	Detail           DetailState
	Picker           *PickerState
	StatusMessage    string
	InputPrompt      string
	TextInput        string
	HelpLine         string
	ShowFacets       bool
	ShowDescriptions bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	pkgRender   *PackageRenderer
	facetRender *FacetRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showDescriptions bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		pkgRender:   NewPackageRenderer(styles, showDescriptions),
		facetRender: NewFacetRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("hubgrip")
	right := ""
	if state.Screen == ScreenSearch && state.Search.Loading {
		right = r.styles.StatusLoading.Render("searching...")
	} else if state.Screen == ScreenDetail && state.Detail.Loading {
		right = r.styles.StatusLoading.Render("loading...")
	}
	content.WriteString(r.titleLine(logo, right, state.Width))
	content.WriteString("\n")

	if state.InputPrompt != "" {
		content.WriteString(state.InputPrompt + state.TextInput)
		content.WriteString("\n")
	}
	content.WriteString("\n")

	switch state.Screen {
	case ScreenDetail:
		content.WriteString(r.renderDetail(state))
	default:
		content.WriteString(r.renderSearch(state))
	}

	// Push the status and help lines to the bottom
	footer := []string{}
	if state.StatusMessage != "" {
		footer = append(footer, r.styles.Status.Render(state.StatusMessage))
	}
	if state.HelpLine != "" {
		footer = append(footer, state.HelpLine)
	}
	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if pad := availableLines - currentLines - len(footer); pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.Picker != nil {
		popup := r.popupRender.RenderPicker(*state.Picker, state.Height)
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, state.Width, r.styles.PickerBox)
	}
	return finalContent
}

func (r *Renderer) titleLine(logo, right string, width int) string {
	if right == "" {
		return logo
	}
	if width <= 0 {
		width = 80
	}
	padding := width - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearch(state ViewState) string {
	s := state.Search
	var b strings.Builder

	switch {
	case s.Summary != "":
		b.WriteString(s.Summary)
		b.WriteString("\n")
	case s.FiltersApplied && !s.Loading:
		b.WriteString(r.styles.Filter.Render("(some filters applied)"))
		b.WriteString("\n")
	}
	if len(s.Toggles) > 0 {
		b.WriteString(r.styles.Filter.Render("[" + strings.Join(s.Toggles, "] [") + "]"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.Error != "" {
		b.WriteString(r.styles.ErrorBanner.Render(s.Error))
		b.WriteString("\n")
	}

	listWidth := state.Width - 4
	var sidebar string
	if state.ShowFacets && !domain.FacetsEmpty(s.Facets) {
		sidebar = r.styles.Sidebar.Render(r.facetRender.RenderSidebar(s.Facets, s.Selected))
		listWidth -= lipgloss.Width(sidebar)
	}

	list := r.renderResults(s, listWidth)
	if sidebar != "" {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, list))
	} else {
		b.WriteString(list)
	}

	if s.PageCount > 1 {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("page %d of %d • %d per page", s.Page, s.PageCount, s.Limit)))
	}
	return b.String()
}

func (r *Renderer) renderResults(s SearchState, width int) string {
	if len(s.Packages) == 0 {
		switch {
		case s.Loading:
			return r.styles.Dim.Render("Searching packages...")
		case s.Error != "":
			return ""
		case s.TextQuery != "":
			return r.styles.Dim.Render(fmt.Sprintf("We're sorry! We can't seem to find any packages that match your search for %q", s.TextQuery))
		default:
			return r.styles.Dim.Render("We're sorry! We can't seem to find any packages that match your search")
		}
	}

	height := s.ViewportHeight
	if height < 1 {
		height = 1
	}
	start := s.ViewportOffset
	if start > len(s.Packages) {
		start = len(s.Packages)
	}
	end := start + height
	if end > len(s.Packages) {
		end = len(s.Packages)
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.pkgRender.RenderPackage(s.Packages[i], i == s.Cursor, s.TextQuery, width))
	}
	if end < len(s.Packages) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(s.Packages)-end)))
	}
	return strings.Join(lines, "\n")
}
