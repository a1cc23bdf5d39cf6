package views

import (
	"fmt"
	"strings"

	"hubgrip/internal/domain"
)

// maxOptionsPerFacet caps the sidebar; the picker lists everything
const maxOptionsPerFacet = 5

// FacetRenderer renders the facet sidebar of the search view
type FacetRenderer struct {
	styles *Styles
}

// NewFacetRenderer creates a new facet renderer
func NewFacetRenderer(styles *Styles) *FacetRenderer {
	return &FacetRenderer{styles: styles}
}

// RenderSidebar lists each facet with its most popular options. Selected
// options are marked and always shown.
func (f *FacetRenderer) RenderSidebar(facets []domain.Facet, selected map[string][]string) string {
	var b strings.Builder
	for i, facet := range facets {
		if len(facet.Options) == 0 {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.styles.FacetTitle.Render(facet.Title))
		b.WriteString("\n")

		shown := 0
		hidden := 0
		for _, opt := range facet.Options {
			checked := isSelected(selected[facet.FilterKey], string(opt.ID))
			if !checked && shown >= maxOptionsPerFacet {
				hidden++
				continue
			}
			shown++
			b.WriteString(f.RenderOption(opt, checked))
			b.WriteString("\n")
		}
		if hidden > 0 {
			b.WriteString(f.styles.Dim.Render(fmt.Sprintf("  +%d more (f)", hidden)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderOption renders a checkbox line for one facet option
func (f *FacetRenderer) RenderOption(opt domain.FacetOption, checked bool) string {
	box := "[ ]"
	line := fmt.Sprintf("%s %s (%d)", box, opt.Name, opt.Total)
	if checked {
		box = "[x]"
		return f.styles.Filter.Render(fmt.Sprintf("%s %s (%d)", box, opt.Name, opt.Total))
	}
	return line
}

func isSelected(values []string, id string) bool {
	for _, v := range values {
		if v == id {
			return true
		}
	}
	return false
}
