// Package dlog provides the leveled logging interface the engine and CLI
// use, with a standard-library-backed default and an optional
// github.com/kataras/golog-backed implementation.
package dlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents logging severity.
type Level int

const (
	// LevelDebug for detailed scheduling and channel-wiring traces.
	LevelDebug Level = iota
	// LevelInfo for normal run lifecycle events.
	LevelInfo
	// LevelWarn for recoverable anomalies.
	LevelWarn
	// LevelError for node failures and panics.
	LevelError
	// LevelNone disables all logging.
	LevelNone
)

// String renders the Level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLevel maps a CLI/config string (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	default:
		return 0, fmt.Errorf("dlog: unknown level %q", s)
	}
}

// Logger is the leveled, printf-style logging interface Graph and the
// CLI depend on. Node Actions never see it directly.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// StdLogger implements Logger using the standard library's log package.
type StdLogger struct {
	logger *log.Logger
	level  Level
}

// NewStdLogger returns a StdLogger writing to out at the given level.
func NewStdLogger(out io.Writer, level Level) *StdLogger {
	return &StdLogger{
		logger: log.New(out, "[dagrs] ", log.LstdFlags),
		level:  level,
	}
}

// Default returns the package's default logger: a StdLogger writing to
// stderr at LevelInfo.
func Default() *StdLogger {
	return NewStdLogger(os.Stderr, LevelInfo)
}

// Debug logs at LevelDebug.
func (l *StdLogger) Debug(format string, v ...any) {
	if l.level <= LevelDebug {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

// Info logs at LevelInfo.
func (l *StdLogger) Info(format string, v ...any) {
	if l.level <= LevelInfo {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

// Warn logs at LevelWarn.
func (l *StdLogger) Warn(format string, v ...any) {
	if l.level <= LevelWarn {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

// Error logs at LevelError.
func (l *StdLogger) Error(format string, v ...any) {
	if l.level <= LevelError {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// NoopLogger discards everything. Useful for tests and library embedding
// where the host application owns logging.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, v ...any) {}
func (NoopLogger) Info(format string, v ...any)  {}
func (NoopLogger) Warn(format string, v ...any)  {}
func (NoopLogger) Error(format string, v ...any) {}

var _ Logger = (*StdLogger)(nil)
var _ Logger = NoopLogger{}
