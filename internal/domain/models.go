package domain

import (
	"encoding/json"
	"strconv"
)

// Package is a single package as returned by the hub search API
type Package struct {
	PackageID             string                 `json:"package_id"`
	Name                  string                 `json:"name"`
	NormalizedName        string                 `json:"normalized_name"`
	DisplayName           string                 `json:"display_name,omitempty"`
	Description           string                 `json:"description,omitempty"`
	Version               string                 `json:"version,omitempty"`
	AppVersion            string                 `json:"app_version,omitempty"`
	LogoImageID           string                 `json:"logo_image_id,omitempty"`
	Stars                 int                    `json:"stars"`
	Deprecated            bool                   `json:"deprecated"`
	Signed                bool                   `json:"signed"`
	Readme                string                 `json:"readme,omitempty"`
	ContentURL            string                 `json:"content_url,omitempty"`
	SecurityReportSummary *SecurityReportSummary `json:"security_report_summary,omitempty"`
	Repository            Repository             `json:"repository"`
}

// Title returns the display name, falling back to the package name
func (p Package) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Repository is the repository a package was published in
type Repository struct {
	RepositoryID      string         `json:"repository_id"`
	Name              string         `json:"name"`
	DisplayName       string         `json:"display_name,omitempty"`
	URL               string         `json:"url"`
	Kind              RepositoryKind `json:"kind"`
	VerifiedPublisher bool           `json:"verified_publisher"`
	Official          bool           `json:"official"`
	UserAlias         string         `json:"user_alias,omitempty"`
	OrganizationName  string         `json:"organization_name,omitempty"`
}

// Publisher returns the organization name or the user alias
func (r Repository) Publisher() string {
	if r.OrganizationName != "" {
		return r.OrganizationName
	}
	return r.UserAlias
}

// SecurityReportSummary counts vulnerabilities per severity
type SecurityReportSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Unknown  int `json:"unknown"`
}

// Facet is a named, multi-valued filter dimension
type Facet struct {
	Title     string        `json:"title"`
	FilterKey string        `json:"filter_key"`
	Options   []FacetOption `json:"options"`
}

// FacetOption is a selectable facet value with its result count
type FacetOption struct {
	ID    FacetOptionID `json:"id"`
	Name  string        `json:"name"`
	Total int           `json:"total"`
}

// FacetOptionID is a facet option identifier. The API sends numbers for
// repository kinds and strings for everything else.
type FacetOptionID string

// UnmarshalJSON accepts both JSON numbers and strings
func (id *FacetOptionID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FacetOptionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FacetOptionID(n.String())
	return nil
}

// FacetsEmpty reports whether no facet has any option
func FacetsEmpty(facets []Facet) bool {
	for _, f := range facets {
		if len(f.Options) > 0 {
			return false
		}
	}
	return true
}

// Metadata describes the page a result set belongs to
type Metadata struct {
	Offset int `json:"offset"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
}

// SearchResults is a page of search results.
// Packages and Facets are nil until a fetch completed.
type SearchResults struct {
	Packages []Package `json:"packages"`
	Facets   []Facet   `json:"facets"`
	Metadata Metadata  `json:"metadata"`
}

// RangeEnd returns the 1-based index of the last result on the page
func (m Metadata) RangeEnd(limit, page int) int {
	end := limit * page
	if m.Total < end {
		return m.Total
	}
	return end
}

// String renders the offset for logs
func (m Metadata) String() string {
	return "offset=" + strconv.Itoa(m.Offset) + " total=" + strconv.Itoa(m.Total) + " limit=" + strconv.Itoa(m.Limit)
}

// DefaultLimit is the page size used until the user picks another one
const DefaultLimit = 20

// AllowedLimits are the selectable page sizes
var AllowedLimits = []int{20, 40, 60}

// ValidLimit reports whether n is a selectable page size
func ValidLimit(n int) bool {
	for _, l := range AllowedLimits {
		if l == n {
			return true
		}
	}
	return false
}
