package search

import (
	"hubgrip/internal/domain"
	"hubgrip/internal/history"
	"hubgrip/internal/hub"
	"hubgrip/internal/query"
)

// NavigateMsg asks the router to move to Location. Replace overwrites the
// current history entry instead of pushing a new one.
type NavigateMsg struct {
	Location history.Location
	Replace  bool
}

// LocationChanged tells the controller the search route became current
type LocationChanged struct {
	Query      query.SearchQuery
	Action     history.Action
	FromDetail bool
}

// FilterChanged selects or deselects a facet value
type FilterChanged struct {
	Name    string
	Value   string
	Checked bool
}

// FiltersReset clears the named facets
type FiltersReset struct {
	Keys []string
}

// TokenToggled selects or deselects a text query token
type TokenToggled struct {
	Value   string
	Checked bool
}

// ToggleFlipped inverts one of the boolean filters
type ToggleFlipped struct {
	Toggle query.Toggle
}

// TogglesCleared switches every boolean filter off
type TogglesCleared struct{}

// TextQuerySubmitted starts a free-text search
type TextQuerySubmitted struct {
	Text string
}

// QueryReset drops all filters but keeps the text
type QueryReset struct{}

// BrowseAll searches without any criteria
type BrowseAll struct{}

// PageChanged moves to another result page
type PageChanged struct {
	Page int
}

// LimitChanged picks another page size
type LimitChanged struct {
	Limit int
}

// PackageOpened leaves the results for a package page
type PackageOpened struct {
	PackageID string
	Path      string
}

// ReturnToSearch goes from a package page back to the last search
type ReturnToSearch struct{}

type searchResultMsg struct {
	seq     uint64
	in      hub.SearchInput
	results *domain.SearchResults
	err     error
}

type prefetchResultMsg struct {
	in  hub.SearchInput
	err error
}
