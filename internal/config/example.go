package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by TODOLIST_* environment variables or CLI flags

# Name shown in the greeting line
name = "MUNDO"

# Initial click count
count = 0

# Initial tasks (an empty list starts with no tasks)
tasks = ["Todo", "Todo", "Todo", "Todo", "Todo", "Todo"]

# Widget tag to instantiate
tag = "my-element"

# Widget width in terminal columns (minimum 20)
width = 60

# Session event logs (supports ~ expansion)
log_dir = "~/.todolist"
event_log = true

# Validate every event detail against the embedded schema
strict_events = false

# Console logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
