package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TODOLIST_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		setSource(sources, field, SourceEnv)
	}

	if v, ok := os.LookupEnv("TODOLIST_NAME"); ok {
		cfg.Name = v
		setEnv("name")
	}
	if v := os.Getenv("TODOLIST_COUNT"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TODOLIST_COUNT: %w", err)
		}
		cfg.Count = n
		setEnv("count")
	}
	if v, ok := os.LookupEnv("TODOLIST_TASKS"); ok {
		cfg.Tasks = splitList(v, ",")
		setEnv("tasks")
	}
	if v := os.Getenv("TODOLIST_TAG"); v != "" {
		cfg.Tag = v
		setEnv("tag")
	}
	if v := os.Getenv("TODOLIST_WIDTH"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TODOLIST_WIDTH: %w", err)
		}
		cfg.Width = n
		setEnv("width")
	}
	if v := os.Getenv("TODOLIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv("TODOLIST_EVENT_LOG"); v != "" {
		cfg.EventLog = boolFromString(v)
		setEnv("event_log")
	}
	if v := os.Getenv("TODOLIST_STRICT_EVENTS"); v != "" {
		cfg.StrictEvents = boolFromString(v)
		setEnv("strict_events")
	}

	// Logging configuration
	if v := os.Getenv("TODOLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
		setEnv("log_level")
	}
	if v := os.Getenv("TODOLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
		setEnv("log_format")
	}
	if v := os.Getenv("TODOLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TODOLIST_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// splitList splits s by sep and trims each part. Empty parts are dropped, so an
// empty string yields an empty, non-nil list.
func splitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
