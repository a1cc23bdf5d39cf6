package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/fsnotify/fsnotify"

	"hubgrip/internal/eventbus"
)

// Watcher reloads the config file when it changes on disk
type Watcher struct {
	svc      ConfigService
	bus      eventbus.EventBus
	debounce time.Duration
}

// NewWatcher creates a watcher for svc.Path()
func NewWatcher(svc ConfigService, bus eventbus.EventBus) *Watcher {
	return &Watcher{svc: svc, bus: bus, debounce: 200 * time.Millisecond}
}

// Run watches until ctx is done. The directory is watched rather than the
// file so editors that replace the file atomically keep working.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create config file watcher")
	}
	defer func() {
		if err := fw.Close(); err != nil {
			logger.Warnf("close config file watcher: %v", err)
		}
	}()

	path := filepath.Clean(w.svc.Path())
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch config dir `%s`", filepath.Dir(path))
	}
	logger.Infof("watching config file for changes: %s", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debugf("config file changed (%s)", event.Op)
				pending = time.After(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("config watcher error: %v", err)
		case <-pending:
			pending = nil
			w.reload(path)
		}
	}
}

func (w *Watcher) reload(path string) {
	cfg, err := w.svc.LoadFromPath(path)
	if err != nil {
		logger.Errorf("reload config: %v", err)
		w.bus.Publish(eventbus.ErrorEvent{Message: "failed to reload config", Err: err})
		return
	}
	logger.Infof("configuration reloaded")
	w.bus.Publish(LoadedEvent(cfg))
}
