package ui

import (
	"strings"

	"hubgrip/internal/domain"
	"hubgrip/internal/history"
	"hubgrip/internal/install"
	"hubgrip/internal/query"
)

// packagesPrefix is the common prefix of every route
const packagesPrefix = "/packages/"

// isSearchRoute reports whether loc shows the search view
func isSearchRoute(loc history.Location) bool {
	return loc.Path == query.SearchPath
}

// parsePackageRoute parses /packages/<kind>/<repository>/<name>
func parsePackageRoute(loc history.Location) (install.Ref, bool) {
	rest, ok := strings.CutPrefix(loc.Path, packagesPrefix)
	if !ok {
		return install.Ref{}, false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return install.Ref{}, false
	}
	kind, ok := domain.ParseRepositoryKind(parts[0])
	if !ok {
		return install.Ref{}, false
	}
	return install.Ref{Kind: kind, Repository: parts[1], Name: parts[2]}, true
}

// packagePath returns the route of pkg's page
func packagePath(pkg domain.Package) string {
	name := pkg.NormalizedName
	if name == "" {
		name = pkg.Name
	}
	return install.Ref{Kind: pkg.Repository.Kind, Repository: pkg.Repository.Name, Name: name}.Path()
}
