// Package log provides structured logging for moledit.
// Entries carry a level, a category and key=value fields, and are written to
// a file only when logging was enabled with --debug or MOLEDIT_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive level name to a Level. Unknown names
// fall back to LevelDebug.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelDebug
	}
}

// Category groups related log messages.
type Category string

const (
	CatSyntax  Category = "syntax"  // Registry mutation and matcher compilation
	CatConfig  Category = "config"  // Keyword record and settings I/O
	CatWatcher Category = "watcher" // Keyword file watcher events
	CatUI      Category = "ui"      // Editor events
	CatCLI     Category = "cli"     // Command-line subcommands
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init opens path for appending and installs it as the global log sink.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		var f *os.File
		f, initErr = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // user-chosen debug log path
		if initErr != nil {
			return
		}
		defaultLogger = &Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug}
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.closer != nil {
			_ = defaultLogger.closer.Close()
		}
	}, nil
}

// SetOutput replaces the global sink with w. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	defaultLogger = &Logger{writer: w, enabled: w != nil, minLevel: LevelDebug}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2026-10-19T10:45:00 [ERROR] [config] message key=value key2=value2
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.writer, b.String())
}
