package views

import (
	"fmt"
	"strings"

	"hubgrip/internal/security"
)

func (r *Renderer) renderDetail(state ViewState) string {
	d := state.Detail
	if d.Loading && d.Package == nil {
		return r.styles.Dim.Render("Loading " + d.Path + "...")
	}
	if d.Error != "" {
		return r.styles.ErrorBanner.Render(d.Error)
	}
	if d.Package == nil {
		return ""
	}

	pkg := d.Package
	var b strings.Builder

	header := r.styles.PackageName.Render(pkg.Title())
	if pkg.Version != "" {
		header += " " + r.styles.PackageVersion.Render(pkg.Version)
	}
	if rating, ok := security.Rate(pkg.SecurityReportSummary); ok {
		header += "  " + rating.Badge() + " " + r.styles.Dim.Render(rating.Description)
	}
	b.WriteString(header)
	b.WriteString("\n")

	repo := pkg.Repository
	fmt.Fprintf(&b, "%s • %s", repo.Kind.String(), repo.Name)
	if p := repo.Publisher(); p != "" {
		fmt.Fprintf(&b, " • %s", p)
	}
	b.WriteString("\n")
	if pkg.AppVersion != "" {
		fmt.Fprintf(&b, "App version: %s\n", pkg.AppVersion)
	}
	if pkg.Deprecated {
		b.WriteString(r.styles.StatusError.Render("This package is deprecated"))
		b.WriteString("\n")
	}
	if pkg.Description != "" {
		b.WriteString("\n")
		b.WriteString(pkg.Description)
		b.WriteString("\n")
	}
	if d.PURL != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("purl: "))
		b.WriteString(d.PURL)
		b.WriteString("\n")
	}

	for _, method := range d.Methods {
		b.WriteString(r.styles.Section.Render(method.Label))
		b.WriteString("\n")
		for _, step := range method.Steps {
			if step.Title != "" {
				b.WriteString(r.styles.Dim.Render(step.Title))
				b.WriteString("\n")
			}
			b.WriteString(r.styles.Command.Render(step.Command))
			b.WriteString("\n")
		}
	}
	if len(d.Methods) == 0 {
		b.WriteString(r.styles.Section.Render("Install"))
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("No installation instructions available"))
		b.WriteString("\n")
	}

	if pkg.Readme != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("Press enter to read the README"))
	}
	return b.String()
}
