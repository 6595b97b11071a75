package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/events"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "todolist",
	}
}

// NewConsoleLogger creates a charmbracelet/log logger writing to w.
// A nil w writes to stderr.
func NewConsoleLogger(w io.Writer, opts ConsoleOptions) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewConsoleLoggerFromConfig creates a console logger from string configuration values.
func NewConsoleLoggerFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	opts := DefaultConsoleOptions()
	opts.Level = ParseLogLevel(level)
	opts.Formatter = ParseLogFormatter(format)
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return NewConsoleLogger(w, opts)
}

// ParseLogLevel parses a string log level to a charmbracelet/log Level.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// eventFields extracts structured fields from an event for charmbracelet/log.
func eventFields(e *events.Event) []any {
	fields := []any{"type", string(e.Type), "id", e.ID}
	if target := e.Target(); target != nil {
		fields = append(fields, "target", target.Name())
	}
	if count, ok := e.Count(); ok {
		fields = append(fields, "count", count)
	}
	return fields
}

// ListenerOptions controls what an event listener does with each event.
type ListenerOptions struct {
	// Session receives every event. nil disables the event log.
	Session *SessionLog
	// Strict validates each detail against the event schema.
	Strict bool
}

// EventListener returns a listener that logs events to logger and, when
// configured, appends them to the session log.
func EventListener(logger *log.Logger, opts ListenerOptions) events.Listener {
	return func(e *events.Event) {
		fields := eventFields(e)
		logger.Debug("Event dispatched", fields...)

		if opts.Strict {
			for _, err := range events.ValidateDetail(e) {
				logger.Error("Invalid event detail", append(fields, "err", err)...)
			}
		}
		if opts.Session != nil {
			if err := opts.Session.Record(e); err != nil {
				logger.Error("Failed to record event", append(fields, "err", err)...)
			}
		}
	}
}
