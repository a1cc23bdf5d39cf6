package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventConfigChanged   EventType = "ConfigChanged"
	EventLimitChanged    EventType = "LimitChanged"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventAppReady        EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when an error occurs outside of the search lifecycle
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is (re)loaded
type ConfigLoadedEvent struct {
	APIURL      string
	SearchLimit int
	Debug       bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when a preference changes and should be persisted
type ConfigChangedEvent struct {
	SearchLimit int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// LimitChangedEvent is emitted when the user picks a new page size
type LimitChangedEvent struct {
	Old int
	New int
}

func (e LimitChangedEvent) Type() EventType { return EventLimitChanged }

// SearchCompletedEvent is emitted when the current search settles
type SearchCompletedEvent struct {
	Query string
	Total int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the current search fails
type SearchFailedEvent struct {
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// AppReadyEvent is emitted once the first screen has been rendered
type AppReadyEvent struct{}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
