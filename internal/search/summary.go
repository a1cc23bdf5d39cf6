package search

import (
	"fmt"
)

// Summary describes the visible range, e.g.
// `21 - 40 of 87 results for "redis" (some filters applied)`.
// It is empty until results are loaded and when there are none.
func (c *Controller) Summary() string {
	meta := c.results.Metadata
	if c.results.Packages == nil || meta.Total == 0 {
		return ""
	}
	s := fmt.Sprintf("%d - %d of %d results", meta.Offset+1, meta.RangeEnd(c.limit, c.query.Page()), meta.Total)
	if c.query.TextQuery != "" {
		s += fmt.Sprintf(" for %q", c.query.TextQuery)
	}
	if c.query.HasFilters() {
		s += " (some filters applied)"
	}
	return s
}

// PageCount returns the number of result pages
func (c *Controller) PageCount() int {
	total := c.results.Metadata.Total
	if total == 0 {
		return 1
	}
	return (total + c.limit - 1) / c.limit
}
