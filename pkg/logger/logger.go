// Package logger builds the slog.Logger shared by the extraction server and
// the CLI, with a configurable level and output format. The console format
// is rendered by charmbracelet/log behind the slog API.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// AppName is attached to every record as the "app" attribute.
const AppName = "product-extractor"

// Format selects the slog handler.
type Format string

// Supported output formats.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported formats.
var ErrUnknownFormat = errors.New("unknown log format")

// New creates a logger writing to stderr.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "console", "json" or "text" (default: "text").
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w. An unknown format falls back
// to text.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch f, _ := ParseFormat(format); f {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatConsole:
		handler = NewConsoleHandler(w, level)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", AppName)
}

// NewConsoleHandler returns a human-readable charmbracelet/log handler with
// timestamps.
func NewConsoleHandler(w io.Writer, level string) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           ConsoleLevel(level),
		ReportTimestamp: true,
	})
}

// ConsoleLevel maps a level string to a charmbracelet/log level.
func ConsoleLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// ParseLevel converts a level string to slog.Level, case-insensitively.
// Everything unrecognized returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat validates a format string. The empty string means text.
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatConsole:
		return FormatConsole, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
