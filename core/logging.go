package core

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is the logging surface the engine writes to. Callers may supply
// their own implementation; NewLogger returns the default one.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes to stdout/stderr with timestamps. Debug messages are
// dropped unless enabled.
type DefaultLogger struct {
	mu    sync.Mutex
	debug bool
	out   *log.Logger
	err   *log.Logger
}

// NewLogger creates a DefaultLogger. prefix is prepended to every line.
func NewLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	if prefix != "" {
		prefix = prefix + " "
	}
	return &DefaultLogger{
		debug: debug,
		out:   log.New(os.Stdout, prefix, flags),
		err:   log.New(os.Stderr, prefix, flags),
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	enabled := l.debug
	l.mu.Unlock()
	if enabled {
		l.out.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Output(2, "INFO  "+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Output(2, "WARN  "+fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Output(2, "ERROR "+fmt.Sprintf(format, args...))
}

// SetDebug toggles debug output at runtime.
func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}
