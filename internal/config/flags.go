package config

import (
	"flag"
	"strings"
)

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"name":           "name",
	"count":          "count",
	"task":           "tasks",
	"tag":            "tag",
	"width":          "width",
	"log-dir":        "log_dir",
	"event-log":      "event_log",
	"strict-events":  "strict_events",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags.
// If sources is non-nil, it tracks the source of each explicitly set value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	// Widget attributes
	fs.StringVar(&cfg.Name, "name", cfg.Name, "Name to greet")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Initial click count")
	fs.StringVar(&cfg.Tag, "tag", cfg.Tag, "Widget tag to instantiate")

	// -task replaces the configured list on first use, then appends.
	replaced := false
	fs.Func("task", "Initial task (repeatable, replaces configured tasks)", func(s string) error {
		if !replaced {
			cfg.Tasks = []string{}
			replaced = true
		}
		cfg.Tasks = append(cfg.Tasks, s)
		return nil
	})

	// Layout
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Widget width in columns")

	// Event log
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.BoolVar(&cfg.EventLog, "event-log", cfg.EventLog, "Write dispatched events to a JSONL session log")
	fs.BoolVar(&cfg.StrictEvents, "strict-events", cfg.StrictEvents, "Validate event details against the event schema")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
