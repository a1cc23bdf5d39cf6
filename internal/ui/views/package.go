package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hubgrip/internal/domain"
	"hubgrip/internal/security"
)

// PackageRenderer handles rendering of result rows
type PackageRenderer struct {
	styles           *Styles
	showDescriptions bool
}

// NewPackageRenderer creates a new package renderer
func NewPackageRenderer(styles *Styles, showDescriptions bool) *PackageRenderer {
	return &PackageRenderer{
		styles:           styles,
		showDescriptions: showDescriptions,
	}
}

// RenderPackage renders one result as up to three lines: title, publisher
// and description
func (r *PackageRenderer) RenderPackage(pkg domain.Package, isSelected bool, textQuery string, width int) string {
	bg := lipgloss.NewStyle()
	if isSelected {
		bg = r.styles.SelectionBg
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	kindStyle := bg.Foreground(lipgloss.Color(KindColor(pkg.Repository.Kind)))
	nameStyle := r.styles.PackageName.Inherit(bg)
	title := pkg.Title()
	if textQuery != "" {
		title = r.highlightMatch(title, textQuery, r.styles.Highlight.Inherit(bg), nameStyle)
	} else {
		title = nameStyle.Render(title)
	}

	parts := []string{
		bg.Render(cursor),
		kindStyle.Render("[" + pkg.Repository.Kind.String() + "]"),
		bg.Render(" "),
		title,
	}
	if pkg.Version != "" {
		parts = append(parts, bg.Render(" "), r.styles.PackageVersion.Inherit(bg).Render(pkg.Version))
	}
	if pkg.Stars > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf(" ★%d", pkg.Stars)))
	}
	if rating, ok := security.Rate(pkg.SecurityReportSummary); ok {
		parts = append(parts, bg.Render(" "), rating.Badge())
	}
	if pkg.Deprecated {
		parts = append(parts, bg.Render(" "), r.styles.StatusError.Inherit(bg).Render("deprecated"))
	}
	lines := []string{strings.Join(parts, "")}

	publisher := pkg.Repository.Publisher()
	repo := pkg.Repository.DisplayName
	if repo == "" {
		repo = pkg.Repository.Name
	}
	meta := "    " + repo
	if publisher != "" {
		meta = "    " + publisher + " / " + repo
	}
	var flags []string
	if pkg.Repository.Official {
		flags = append(flags, "official")
	}
	if pkg.Repository.VerifiedPublisher {
		flags = append(flags, "verified")
	}
	if pkg.Signed {
		flags = append(flags, "signed")
	}
	if len(flags) > 0 {
		meta += " (" + strings.Join(flags, ", ") + ")"
	}
	lines = append(lines, r.styles.Dim.Render(truncate(meta, width)))

	if r.showDescriptions {
		lines = append(lines, "    "+truncate(pkg.Description, width-4))
	} else {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells
func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-3 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// highlightMatch highlights matching text within a string
func (r *PackageRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
