package config

import (
	"sync"

	"hubgrip/internal/eventbus"
)

// Preferences persists user preferences that change at runtime.
// It owns cfg after construction; read it through Snapshot.
type Preferences struct {
	mu  sync.Mutex
	cfg *Config
	svc ConfigService
	bus eventbus.EventBus
}

// NewPreferences creates a preference store backed by svc
func NewPreferences(bus eventbus.EventBus, svc ConfigService, cfg *Config) *Preferences {
	return &Preferences{cfg: cfg, svc: svc, bus: bus}
}

// Subscribe wires the store to the bus and returns the unsubscribe function
func (p *Preferences) Subscribe() func() {
	unsubLimit := p.bus.Subscribe(eventbus.EventLimitChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.LimitChangedEvent); ok {
			p.SetLimit(ev.New)
		}
	})
	unsubLoaded := p.bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			p.mu.Lock()
			p.cfg.Search.Limit = ev.SearchLimit
			p.cfg.Debug = ev.Debug
			p.mu.Unlock()
		}
	})
	return func() {
		unsubLimit()
		unsubLoaded()
	}
}

// SetLimit stores and saves a new page size
func (p *Preferences) SetLimit(limit int) {
	p.mu.Lock()
	if p.cfg.Search.Limit == limit {
		p.mu.Unlock()
		return
	}
	p.cfg.Search.Limit = limit
	snapshot := *p.cfg
	p.mu.Unlock()

	if err := p.svc.Save(&snapshot); err != nil {
		logger.Errorf("save search limit %d: %v", limit, err)
		p.bus.Publish(eventbus.ErrorEvent{Message: "failed to save preferences", Err: err})
		return
	}
	p.bus.Publish(eventbus.ConfigChangedEvent{SearchLimit: limit})
}

// Snapshot returns a copy of the current configuration
func (p *Preferences) Snapshot() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.cfg
}
