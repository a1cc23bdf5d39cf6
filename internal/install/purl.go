package install

import (
	"github.com/Laisky/errors/v2"
	packageurl "github.com/package-url/packageurl-go"

	"hubgrip/internal/domain"
)

// PURL returns the package URL of pkg, e.g. pkg:helm/bitnami/redis@17.0.1
func PURL(pkg domain.Package) string {
	var qualifiers packageurl.Qualifiers
	if pkg.Repository.URL != "" {
		qualifiers = packageurl.QualifiersFromMap(map[string]string{"repository_url": pkg.Repository.URL})
	}
	return packageurl.NewPackageURL(
		pkg.Repository.Kind.Slug(),
		pkg.Repository.Name,
		pkg.Name,
		pkg.Version,
		qualifiers,
		"",
	).ToString()
}

// Ref locates a package on the hub
type Ref struct {
	Kind       domain.RepositoryKind
	Repository string
	Name       string
	Version    string
}

// Path returns the route of the package page
func (r Ref) Path() string {
	return "/packages/" + r.Kind.Slug() + "/" + r.Repository + "/" + r.Name
}

// ParsePURL reads a package URL produced by PURL
func ParsePURL(s string) (Ref, error) {
	p, err := packageurl.FromString(s)
	if err != nil {
		return Ref{}, errors.Wrapf(err, "parse purl `%s`", s)
	}
	kind, ok := domain.ParseRepositoryKind(p.Type)
	if !ok {
		return Ref{}, errors.Errorf("unsupported package type `%s`", p.Type)
	}
	if p.Namespace == "" {
		return Ref{}, errors.Errorf("purl `%s` has no repository", s)
	}
	return Ref{Kind: kind, Repository: p.Namespace, Name: p.Name, Version: p.Version}, nil
}
