package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/events"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseLogFormatter(tt.input); got != tt.want {
			t.Errorf("ParseLogFormatter(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return NewConsoleLogger(buf, ConsoleOptions{
		Level:     log.DebugLevel,
		Formatter: log.LogfmtFormatter,
	})
}

func TestEventListenerLogs(t *testing.T) {
	var buf bytes.Buffer
	target := events.NewTarget("my-element", nil)
	target.AddListener(events.TypeAny, EventListener(newTestLogger(&buf), ListenerOptions{}))

	target.Dispatch(events.NewCounterChanged(4))

	out := buf.String()
	for _, want := range []string{"Event dispatched", "type=counter-changed", "count=4", "target=my-element"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEventListenerStrict(t *testing.T) {
	var buf bytes.Buffer
	target := events.NewTarget("my-element", nil)
	target.AddListener(events.TypeAny, EventListener(newTestLogger(&buf), ListenerOptions{Strict: true}))

	target.Dispatch(events.NewCounterChanged(1))
	if strings.Contains(buf.String(), "Invalid event detail") {
		t.Errorf("valid event flagged:\n%s", buf.String())
	}

	target.Dispatch(events.New(events.TypeCounterChanged, events.Init{Detail: map[string]any{"count": "x"}}))
	if !strings.Contains(buf.String(), "Invalid event detail") {
		t.Errorf("invalid event not flagged:\n%s", buf.String())
	}
}

func TestEventListenerSession(t *testing.T) {
	session, err := NewSessionLog(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionLog: %v", err)
	}

	var buf bytes.Buffer
	target := events.NewTarget("my-element", nil)
	target.AddListener(events.TypeAny, EventListener(newTestLogger(&buf), ListenerOptions{Session: session}))
	target.Dispatch(events.NewCounterChanged(1))
	target.Dispatch(events.NewCreate())
	session.Close()

	records, err := ReadEvents(session.LogPath)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records: got %d, want 2", len(records))
	}

	// Recording after close is logged, not fatal.
	target.Dispatch(events.NewCreate())
	if !strings.Contains(buf.String(), "Failed to record event") {
		t.Errorf("expected record failure to be logged:\n%s", buf.String())
	}
}

func TestNewConsoleLoggerFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerFromConfig(&buf, "warn", "json", false, false)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered:\n%s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("unexpected json output:\n%s", out)
	}
}
