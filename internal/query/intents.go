package query

import (
	"hubgrip/internal/domain"
)

func (q SearchQuery) clone() SearchQuery {
	c := Canonicalize(q)
	filters := make(map[string][]string, len(c.Filters))
	for k, v := range c.Filters {
		filters[k] = append([]string(nil), v...)
	}
	c.Filters = filters
	c.TextQueryTokens = append([]string(nil), c.TextQueryTokens...)
	return c
}

// WithFilterToggled adds or removes a facet value and returns to page 1.
// A repo selection only makes sense while Helm is among the selected kinds,
// so changing kind to a set without Helm drops it.
func (q SearchQuery) WithFilterToggled(name, value string, checked bool) SearchQuery {
	c := q.clone()
	values := c.Filters[name]
	if checked {
		values = append(values, value)
	} else {
		kept := values[:0]
		for _, v := range values {
			if v != value {
				kept = append(kept, v)
			}
		}
		values = kept
	}
	c.Filters[name] = values

	if name == FacetKind {
		if kinds := normalizeSet(c.Filters[FacetKind]); len(kinds) > 0 && !containsHelm(kinds) {
			delete(c.Filters, FacetRepo)
		}
	}

	c.PageNumber = 1
	return Canonicalize(c)
}

func containsHelm(kinds []string) bool {
	for _, k := range kinds {
		if domain.IsHelmKind(k) {
			return true
		}
	}
	return false
}

// WithFiltersReset clears the named facets
func (q SearchQuery) WithFiltersReset(keys ...string) SearchQuery {
	c := q.clone()
	for _, k := range keys {
		delete(c.Filters, k)
	}
	c.PageNumber = 1
	return Canonicalize(c)
}

// WithTokenToggled adds or removes a text query token
func (q SearchQuery) WithTokenToggled(value string, checked bool) SearchQuery {
	c := q.clone()
	if checked {
		c.TextQueryTokens = append(c.TextQueryTokens, value)
	} else {
		kept := c.TextQueryTokens[:0]
		for _, t := range c.TextQueryTokens {
			if t != value {
				kept = append(kept, t)
			}
		}
		c.TextQueryTokens = kept
	}
	c.PageNumber = 1
	return Canonicalize(c)
}

// WithToggleFlipped inverts a boolean filter
func (q SearchQuery) WithToggleFlipped(t Toggle) SearchQuery {
	c := q.clone()
	c.setToggle(t, !c.Toggled(t))
	c.PageNumber = 1
	return Canonicalize(c)
}

// WithTogglesCleared switches every boolean filter off
func (q SearchQuery) WithTogglesCleared() SearchQuery {
	c := q.clone()
	for _, t := range Toggles {
		c.setToggle(t, false)
	}
	c.PageNumber = 1
	return Canonicalize(c)
}

// WithTextQuery starts a new free-text search keeping the other filters
func (q SearchQuery) WithTextQuery(text string) SearchQuery {
	c := q.clone()
	c.TextQuery = text
	c.PageNumber = 1
	return Canonicalize(c)
}

// Reset drops every filter and keeps the free text
func (q SearchQuery) Reset() SearchQuery {
	return Canonicalize(SearchQuery{TextQuery: q.TextQuery})
}

// BrowseAll returns the unfiltered query
func BrowseAll() SearchQuery {
	return Canonicalize(SearchQuery{})
}

// WithPage moves to page n, clamped to at least 1
func (q SearchQuery) WithPage(n int) SearchQuery {
	c := q.clone()
	c.PageNumber = n
	return Canonicalize(c)
}
