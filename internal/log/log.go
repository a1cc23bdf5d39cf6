// Package log provides named loggers on top of the standard library logger.
//
// The TUI owns the terminal, so all output goes to a single writer (a log file
// in normal runs, a buffer in tests). Each component asks for its own logger:
//
//	l := log.ForService("hub")
//	l.Infof("search took %s", d)
//	l.Debugf("request %s", u) // only printed when debug is enabled
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"sync/atomic"
)

// Logger is a named logger.
type Logger struct {
	name string
}

// writerHolder keeps atomic.Value stores of a single concrete type.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug  atomic.Bool
	serviceDebug sync.Map // map[string]*atomic.Bool
	loggers      sync.Map // map[string]*Logger

	mu  sync.Mutex
	std = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)

	outputWriter atomic.Value // writerHolder
)

func init() {
	outputWriter.Store(writerHolder{w: os.Stderr})
}

// ForService returns the memoized logger for name.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	actual, _ := loggers.LoadOrStore(name, &Logger{name: name})
	return actual.(*Logger)
}

// SetOutput redirects every logger to w.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	defer mu.Unlock()
	outputWriter.Store(writerHolder{w: w})
	std.SetOutput(w)
}

// Output returns the current destination.
func Output() io.Writer {
	return outputWriter.Load().(writerHolder).w
}

// SetGlobalDebug enables or disables debug logging for every service.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// EnableDebugFor enables debug logging for a single service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	val, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	val.(*atomic.Bool).Store(true)
}

// DisableDebugFor removes a per-service debug override.
func DisableDebugFor(name string) {
	if val, ok := serviceDebug.Load(name); ok {
		val.(*atomic.Bool).Store(false)
	}
}

// DebugEnabled reports whether debug lines of this logger are printed.
func (l *Logger) DebugEnabled() bool {
	if globalDebug.Load() {
		return true
	}
	if val, ok := serviceDebug.Load(l.name); ok {
		return val.(*atomic.Bool).Load()
	}
	return false
}

func (l *Logger) output(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	_ = std.Output(3, fmt.Sprintf("%s [%s>] %s", level, l.name, msg))
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.output("INFO", format, args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.output("WARN", format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.output("ERROR", format, args...) }

// Debugf logs only when debug is enabled globally or for this service.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.output("DEBUG", format, args...)
}
