package views

import (
	"github.com/charmbracelet/lipgloss"

	"hubgrip/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Filter         lipgloss.Style
	InfoBox        lipgloss.Style
	PickerBox      lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	Highlight      lipgloss.Style
	SelectionBg    lipgloss.Style
	StatusError    lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	Section        lipgloss.Style
	FacetTitle     lipgloss.Style
	Sidebar        lipgloss.Style
	Command        lipgloss.Style
	Badge          lipgloss.Style
	ErrorBanner    lipgloss.Style
	PackageName    lipgloss.Style
	PackageVersion lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		PickerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		FacetTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Sidebar: lipgloss.NewStyle().
			Width(28).
			MarginRight(2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238")),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Padding(0, 1),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		PackageName:    lipgloss.NewStyle().Bold(true),
		PackageVersion: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
}

// KindColor returns the color used to tag a repository kind
func KindColor(kind domain.RepositoryKind) string {
	switch {
	case kind == domain.KindHelm || kind == domain.KindHelmPlugin:
		return "33" // blue
	case kind == domain.KindOLM:
		return "170" // magenta
	case kind == domain.KindFalco || kind == domain.KindOPA:
		return "214" // yellow
	default:
		return "78" // green
	}
}
