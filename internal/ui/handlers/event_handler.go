package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hubgrip/internal/eventbus"
	"hubgrip/internal/log"
	"hubgrip/internal/search"
)

var logger = log.ForService("ui")

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// ClearStatusMsg clears the status line once its timer fires
type ClearStatusMsg struct {
	Generation int
}

// Limiter is the part of the search controller the handler drives
type Limiter interface {
	Limit() int
}

// EventHandler turns domain events into status messages and intents
type EventHandler struct {
	limiter    Limiter
	status     string
	generation int
}

// NewEventHandler creates a new event handler
func NewEventHandler(limiter Limiter) *EventHandler {
	return &EventHandler{limiter: limiter}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigLoadedEvent:
		// An edited config file may carry a new page size
		if e.SearchLimit != 0 && e.SearchLimit != h.limiter.Limit() {
			logger.Infof("page size changed on disk: %d -> %d", h.limiter.Limit(), e.SearchLimit)
			limit := e.SearchLimit
			return func() tea.Msg { return search.LimitChanged{Limit: limit} }
		}

	case eventbus.ConfigChangedEvent:
		return h.SetStatus(fmt.Sprintf("Showing %d packages per page", e.SearchLimit))

	case eventbus.SearchFailedEvent:
		logger.Warnf("search %q failed: %v", e.Query, e.Err)

	case eventbus.ErrorEvent:
		return h.SetStatus(fmt.Sprintf("Error: %s", e.Message))
	}

	return nil
}

// SetStatus shows msg and schedules its removal
func (h *EventHandler) SetStatus(msg string) tea.Cmd {
	h.status = msg
	h.generation++
	gen := h.generation
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Generation: gen}
	})
}

// ClearStatus drops the status line unless a newer message replaced it
func (h *EventHandler) ClearStatus(msg ClearStatusMsg) {
	if msg.Generation == h.generation {
		h.status = ""
	}
}

// Status returns the current status line
func (h *EventHandler) Status() string {
	return h.status
}
