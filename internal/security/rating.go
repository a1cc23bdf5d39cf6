// Package security turns vulnerability counts into a letter rating.
package security

import (
	"github.com/charmbracelet/lipgloss"

	"hubgrip/internal/domain"
)

// Rating is a letter grade with its badge colour
type Rating struct {
	Level       string
	Color       lipgloss.Color
	Description string
}

var (
	RatingA       = Rating{Level: "A", Color: lipgloss.Color("#0C9D41"), Description: "No vulnerabilities found"}
	RatingB       = Rating{Level: "B", Color: lipgloss.Color("#B5C604"), Description: "Only low severity vulnerabilities"}
	RatingC       = Rating{Level: "C", Color: lipgloss.Color("#F4BD0C"), Description: "Medium severity vulnerabilities"}
	RatingD       = Rating{Level: "D", Color: lipgloss.Color("#F7860F"), Description: "High severity vulnerabilities"}
	RatingF       = Rating{Level: "F", Color: lipgloss.Color("#DF2A19"), Description: "Critical severity vulnerabilities"}
	RatingUnknown = Rating{Level: "-", Color: lipgloss.Color("#B2B2B2"), Description: "Vulnerabilities of unknown severity"}
)

// Rate grades a summary by its worst severity. ok is false when the
// package has not been scanned.
func Rate(summary *domain.SecurityReportSummary) (Rating, bool) {
	if summary == nil {
		return Rating{}, false
	}
	severities := []struct {
		count  int
		rating Rating
	}{
		{summary.Critical, RatingF},
		{summary.High, RatingD},
		{summary.Medium, RatingC},
		{summary.Low, RatingB},
		{summary.Unknown, RatingUnknown},
	}
	for _, s := range severities {
		if s.count > 0 {
			return s.rating, true
		}
	}
	return RatingA, true
}

// Badge renders the rating as a coloured pill
func (r Rating) Badge() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(r.Color).
		Padding(0, 1).
		Render(r.Level)
}
