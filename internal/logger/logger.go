package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the logging surface shared by every component.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

var (
	mu      sync.RWMutex
	console bool
)

// Configure sets the global level and output format ("json" or "console") used by loggers created afterwards.
// An empty format keeps the APP_ENV based detection.
func Configure(level, format string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(format) {
	case "":
		console = strings.ToLower(os.Getenv("APP_ENV")) == "dev"
	case "console":
		console = true
	case "json":
		console = false
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// New returns a Logger for the given component writing to stderr.
func New(component string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return NewZerologLogger(component, os.Stderr, console || strings.ToLower(os.Getenv("APP_ENV")) == "dev")
}
