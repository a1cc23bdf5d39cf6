package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/query"
	"hubgrip/internal/search"
	inputtypes "hubgrip/internal/ui/input/types"
	"hubgrip/internal/ui/views"
)

// pickerEntry is a picker row together with the intent it stands for
type pickerEntry struct {
	item     views.PickerItem
	facetKey string
	value    string
	toggle   query.Toggle
	isToggle bool
}

// pickerEntries lists the rows of the open picker, built from the current
// results so that counts stay fresh while filters change
func (m *Model) pickerEntries() []pickerEntry {
	q := m.controller.Query()

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeToggles:
		entries := make([]pickerEntry, 0, len(query.Toggles))
		for _, t := range query.Toggles {
			entries = append(entries, pickerEntry{
				item:     views.PickerItem{Label: t.Label(), Checked: q.Toggled(t)},
				toggle:   t,
				isToggle: true,
			})
		}
		return entries

	case inputtypes.ModeFacets:
		var entries []pickerEntry
		for _, facet := range m.controller.Results().Facets {
			if len(facet.Options) == 0 {
				continue
			}
			entries = append(entries, pickerEntry{item: views.PickerItem{Label: facet.Title, Header: true}})
			selected := q.Filters[facet.FilterKey]
			for _, opt := range facet.Options {
				id := string(opt.ID)
				entries = append(entries, pickerEntry{
					item:     views.PickerItem{Label: opt.Name, Count: opt.Total, Checked: contains(selected, id)},
					facetKey: facet.FilterKey,
					value:    id,
				})
			}
		}
		return entries
	}
	return nil
}

func (m *Model) pickerState() *views.PickerState {
	title := ""
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeFacets:
		title = "Filters"
	case inputtypes.ModeToggles:
		title = "Toggles"
	default:
		return nil
	}

	entries := m.pickerEntries()
	items := make([]views.PickerItem, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	if len(items) == 0 {
		items = append(items, views.PickerItem{Label: "No filters available", Header: true})
	}
	cursor := m.pickerCursor
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	return &views.PickerState{Title: title, Items: items, Cursor: cursor}
}

// movePicker moves the cursor by delta rows, skipping facet headers
func (m *Model) movePicker(delta int) {
	entries := m.pickerEntries()
	if len(entries) == 0 || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}

	c := m.pickerCursor + delta
	if c < 0 {
		c = 0
	}
	if c >= len(entries) {
		c = len(entries) - 1
	}
	for c >= 0 && c < len(entries) && entries[c].item.Header {
		c += step
	}
	if c < 0 || c >= len(entries) {
		// Only headers in that direction; look the other way
		for c = m.pickerCursor; c >= 0 && c < len(entries) && entries[c].item.Header; c -= step {
		}
		if c < 0 || c >= len(entries) {
			return
		}
	}
	m.pickerCursor = c
}

func (m *Model) togglePicker() tea.Cmd {
	entries := m.pickerEntries()
	if m.pickerCursor < 0 || m.pickerCursor >= len(entries) {
		return nil
	}
	e := entries[m.pickerCursor]
	switch {
	case e.item.Header:
		return nil
	case e.isToggle:
		return m.updateController(search.ToggleFlipped{Toggle: e.toggle})
	default:
		return m.updateController(search.FilterChanged{Name: e.facetKey, Value: e.value, Checked: !e.item.Checked})
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
