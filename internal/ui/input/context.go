package input

import "hubgrip/internal/ui/input/types"

// ModelContext is a snapshot of model state for the input handler
type ModelContext struct {
	View     types.View
	Items    int
	Page     int
	Pages    int
	Back     bool
	Forward  bool
	Filtered bool
	Text     string
}

func (c *ModelContext) CurrentView() types.View { return c.View }
func (c *ModelContext) TotalItems() int         { return c.Items }
func (c *ModelContext) CurrentPage() int        { return c.Page }
func (c *ModelContext) PageCount() int          { return c.Pages }
func (c *ModelContext) CanGoBack() bool         { return c.Back }
func (c *ModelContext) CanGoForward() bool      { return c.Forward }
func (c *ModelContext) HasFilters() bool        { return c.Filtered }
func (c *ModelContext) CurrentText() string     { return c.Text }
