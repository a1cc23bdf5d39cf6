// Package history keeps a browser-like stack of visited locations.
package history

import (
	"strings"
)

// Action describes how the current location was reached
type Action int

const (
	Push Action = iota
	Pop
	Replace
)

func (a Action) String() string {
	switch a {
	case Push:
		return "PUSH"
	case Pop:
		return "POP"
	case Replace:
		return "REPLACE"
	}
	return "UNKNOWN"
}

// Location is a visited route
type Location struct {
	Path     string
	RawQuery string
	// FromDetail is set when the user returned to search from a package page
	FromDetail bool
}

// ParseLocation splits a URL like "/packages/search?page=2"
func ParseLocation(raw string) Location {
	path, query, _ := strings.Cut(raw, "?")
	return Location{Path: path, RawQuery: query}
}

// String renders the location as a URL
func (l Location) String() string {
	if l.RawQuery == "" {
		return l.Path
	}
	return l.Path + "?" + l.RawQuery
}

// History is a stack of locations with a cursor. It is not safe for
// concurrent use; the UI owns it.
type History struct {
	entries []Location
	index   int
}

// New creates a history positioned at start
func New(start Location) *History {
	return &History{entries: []Location{start}}
}

// Push appends loc after the current entry and drops forward entries
func (h *History) Push(loc Location) {
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry
func (h *History) Replace(loc Location) {
	h.entries[h.index] = loc
}

// Back moves one entry back. ok is false at the oldest entry.
func (h *History) Back() (Location, bool) {
	if h.index == 0 {
		return h.entries[0], false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward. ok is false at the newest entry.
func (h *History) Forward() (Location, bool) {
	if h.index == len(h.entries)-1 {
		return h.entries[h.index], false
	}
	h.index++
	return h.entries[h.index], true
}

// Current returns the current entry
func (h *History) Current() Location {
	return h.entries[h.index]
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// CanGoBack reports whether Back would move
func (h *History) CanGoBack() bool {
	return h.index > 0
}

// CanGoForward reports whether Forward would move
func (h *History) CanGoForward() bool {
	return h.index < len(h.entries)-1
}
