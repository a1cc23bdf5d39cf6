package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PickerItem is one row of a checklist popup. Header rows group the items
// below them and cannot be checked.
type PickerItem struct {
	Label   string
	Count   int
	Checked bool
	Header  bool
}

// PickerState is the checklist popup shown over the search view
type PickerState struct {
	Title  string
	Items  []PickerItem
	Cursor int
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPicker renders the checklist with a window around the cursor
func (pr *PopupRenderer) RenderPicker(p PickerState, height int) string {
	var lines []string
	lines = append(lines, pr.styles.Title.Render(p.Title), "")

	visible := height - 10
	if visible < 3 {
		visible = 3
	}
	start := 0
	if p.Cursor >= visible {
		start = p.Cursor - visible + 1
	}
	end := start + visible
	if end > len(p.Items) {
		end = len(p.Items)
	}

	if start > 0 {
		lines = append(lines, pr.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", start)))
	}
	for i := start; i < end; i++ {
		item := p.Items[i]
		if item.Header {
			lines = append(lines, pr.styles.FacetTitle.Render(item.Label))
			continue
		}
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		line := "  " + box + " " + item.Label
		if item.Count > 0 {
			line += fmt.Sprintf(" (%d)", item.Count)
		}
		style := lipgloss.NewStyle()
		if item.Checked {
			style = pr.styles.Filter
		}
		if i == p.Cursor {
			line = ">" + line[1:]
			style = style.Inherit(pr.styles.SelectionBg)
		}
		lines = append(lines, style.Render(line))
	}
	if end < len(p.Items) {
		lines = append(lines, pr.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", len(p.Items)-end)))
	}

	lines = append(lines, "", pr.styles.Help.Render("space toggle • c clear • esc close"))
	return strings.Join(lines, "\n")
}

// RenderPopupOverlay centers the popup on a dimmed copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	popupLines := strings.Split(styledPopup, "\n")
	top := (height - len(popupLines)) / 2
	if top < 0 {
		top = 0
	}

	baseLines := strings.Split(desaturateANSI(mainContent), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	// Rows covered by the popup are replaced by the centered popup row;
	// the rest of the screen stays visible but greyed out.
	for i, pl := range popupLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, pl,
			lipgloss.WithWhitespaceChars(" "))
	}
	return strings.Join(baseLines[:height], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	for i, line := range lines {
		lines[i] = grey.Render(ansiRE.ReplaceAllString(line, ""))
	}
	return strings.Join(lines, "\n")
}
