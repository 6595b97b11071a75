package config

import (
	"github.com/nibzard/todolist-go/internal/widget"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultWidth     = 60
	MinWidth         = 20
	DefaultLogDir    = "~/.todolist"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultEventLog  = true
)

// Config holds the full configuration for todolist.
type Config struct {
	// Widget attributes
	Name  string   `toml:"name"`
	Count int      `toml:"count"`
	Tasks []string `toml:"tasks"`
	Tag   string   `toml:"tag"`

	// Terminal layout
	Width int `toml:"width"`

	// Session event log
	LogDir       string `toml:"log_dir"`
	EventLog     bool   `toml:"event_log"`
	StrictEvents bool   `toml:"strict_events"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"name",
		"count",
		"tasks",
		"tag",
		"width",
		"log_dir",
		"event_log",
		"strict_events",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Name = widget.DefaultName
	cfg.Count = 0
	cfg.Tasks = widget.DefaultTasks()
	cfg.Tag = widget.DefaultTag
	cfg.Width = DefaultWidth
	cfg.LogDir = DefaultLogDir
	cfg.EventLog = DefaultEventLog
	cfg.StrictEvents = false
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// WidgetOptions returns the widget options described by the config.
func (c *Config) WidgetOptions() []widget.Option {
	return []widget.Option{
		widget.WithName(c.Name),
		widget.WithCount(c.Count),
		widget.WithTasks(c.Tasks),
	}
}
