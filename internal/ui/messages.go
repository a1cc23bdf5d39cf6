package ui

import (
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// packageLoadedMsg contains the result of a package page fetch
type packageLoadedMsg struct {
	seq  uint64
	path string
	pkg  *domain.Package
	err  error
}

// pagerMsg contains the result of a pager session
type pagerMsg struct {
	what string
	err  error
}

// quitMsg signals that the application should quit
type quitMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
