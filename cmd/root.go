// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/events"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/ui"
	"github.com/nibzard/todolist-go/internal/widget"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams; tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "run":
		return runCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "logs":
		return logsCommand(cfg, remainingArgs)
	case "schema":
		return schemaCommand(remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// session holds the loggers shared by commands that host a widget.
type session struct {
	logger *log.Logger
	events *logging.SessionLog
	closer io.Closer
}

// openSession builds the console logger and, when enabled, the session event log.
// In TUI mode console output goes to console.log in the log directory so it does
// not draw over the interface.
func openSession(cfg *config.Config, tuiMode bool) (*session, error) {
	s := &session{}

	var out io.Writer = stderr
	if tuiMode {
		logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			return nil, fmt.Errorf("finding log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(logDir, "console.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open console log: %w", err)
		}
		out = f
		s.closer = f
	}
	s.logger = logging.NewConsoleLoggerFromConfig(out, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	if cfg.EventLog {
		sl, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		s.events = sl
		s.logger.Debug("Session event log", "path", sl.LogPath)
	}
	return s, nil
}

// listener returns the event listener that logs and records widget events.
func (s *session) listener(cfg *config.Config) events.Listener {
	return logging.EventListener(s.logger, logging.ListenerOptions{
		Session: s.events,
		Strict:  cfg.StrictEvents,
	})
}

// Close closes the event log and console log file.
func (s *session) Close() {
	if err := s.events.Close(); err != nil {
		s.logger.Warn("Failed to close event log", "err", err)
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			s.logger.Warn("Failed to close console log", "err", err)
		}
	}
}

// printEvent returns a listener that writes each event as "<type> <detail JSON>".
func printEvent(out io.Writer, logger *log.Logger) events.Listener {
	return func(e *events.Event) {
		detail, err := json.Marshal(e.Detail)
		if err != nil {
			logger.Warn("Cannot encode event detail", "type", e.Type, "err", err)
			return
		}
		fmt.Fprintf(out, "%s %s\n", e.Type, detail)
	}
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (try 'todolist run')")
	}

	s, err := openSession(cfg, true)
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.RunTUI(ctx, cfg, ui.WithLogger(s.logger), ui.WithEventListener(s.listener(cfg)))
}

// op is one step of a scripted run.
type op struct {
	name string
	text string
	n    int
}

// parseOps parses run arguments into operations.
func parseOps(args []string) ([]op, error) {
	var ops []op
	for i := 0; i < len(args); i++ {
		name := args[i]
		switch name {
		case "inc", "create":
			ops = append(ops, op{name: name})
		case "add", "name":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a text argument", name)
			}
			i++
			ops = append(ops, op{name: name, text: args[i]})
		case "remove", "count":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires an integer argument", name)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return nil, fmt.Errorf("%s: invalid integer %q", name, args[i])
			}
			ops = append(ops, op{name: name, n: n})
		default:
			return nil, fmt.Errorf("unknown operation: %s", name)
		}
	}
	return ops, nil
}

// apply runs o against w.
func (o op) apply(w *widget.Widget) {
	switch o.name {
	case "inc":
		w.Increment()
	case "create":
		w.RequestCreate()
	case "add":
		w.AddTask(o.text)
	case "remove":
		w.RemoveTask(o.n)
	case "name":
		w.SetName(o.text)
	case "count":
		w.SetCount(o.n)
	}
}

// runCommand drives a widget headlessly from a list of operations.
func runCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	quiet := fs.Bool("q", false, "Only print the final state")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ops, err := parseOps(fs.Args())
	if err != nil {
		return err
	}

	s, err := openSession(cfg, false)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := widget.Create(cfg.Tag, cfg.WidgetOptions()...)
	if err != nil {
		return fmt.Errorf("create widget %q: %w", cfg.Tag, err)
	}
	w.Target().AddListener(events.TypeAny, s.listener(cfg))
	if !*quiet {
		w.Target().AddListener(events.TypeAny, printEvent(stdout, s.logger))
	}

	for _, o := range ops {
		o.apply(w)
	}

	printState(stdout, w)
	if s.events != nil {
		s.logger.Info("Events recorded", "path", s.events.LogPath)
	}
	return nil
}

// printState prints the widget's name, count, and tasks.
func printState(out io.Writer, w *widget.Widget) {
	fmt.Fprintf(out, "%s\n", w.Greeting())
	fmt.Fprintf(out, "Click Count: %d\n", w.Count())
	fmt.Fprintf(out, "Tasks (%d):\n", w.Len())
	for i, task := range w.Tasks() {
		fmt.Fprintf(out, "  %d. %s\n", i, task)
	}
}

// tailCommand tails the latest session event log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse tail-specific flags
	fs := flag.NewFlagSet("todolist tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	// Find the latest JSONL file
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// logsCommand lists session event logs, newest first.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todolist logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	sessions, err := logging.FindSessions(logDir)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Log directory: %s\n\n", logDir)
	for _, s := range sessions {
		fmt.Fprintf(stdout, "  %-24s %s  %6d bytes\n", s.RunID, s.ModTime.Format("2006-01-02 15:04:05"), s.Size)
	}
	return nil
}

// schemaCommand prints the event detail schema.
func schemaCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	_, err := stdout.Write(events.Schema())
	return err
}

// configCommand prints the effective configuration.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todolist config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showSources := fs.Bool("sources", false, "Show where each value came from")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if path := cws.GetConfigFile(); path != "" {
		fmt.Fprintf(stdout, "# Config file: %s\n", path)
	} else {
		fmt.Fprintln(stdout, "# Config file: (none)")
	}
	fmt.Fprintf(stdout, "# Project root: %s\n\n", cws.Config.ProjectRoot)

	if err := toml.NewEncoder(stdout).Encode(cws.Config); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if *showSources {
		fields := make([]string, 0, len(cws.Sources))
		for field := range cws.Sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "# Sources")
		for _, field := range fields {
			fmt.Fprintf(stdout, "#   %-15s %s\n", field, cws.Sources[field])
		}
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todolist - a todo list widget with a counter and notification events")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  run [ops]     Drive the widget headlessly")
	fmt.Fprintln(w, "  tail          Print the latest session event log")
	fmt.Fprintln(w, "  logs          List session event logs")
	fmt.Fprintln(w, "  schema        Print the event detail JSON Schema")
	fmt.Fprintln(w, "  config        Print the effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Operations (use with 'run' command):")
	fmt.Fprintln(w, "  inc           Click the counter")
	fmt.Fprintln(w, "  create        Press CREATE (dispatches create only)")
	fmt.Fprintln(w, "  add <text>    Append a task")
	fmt.Fprintln(w, "  remove <i>    Remove the task at index i")
	fmt.Fprintln(w, "  name <text>   Set the name")
	fmt.Fprintln(w, "  count <n>     Set the count without an event")
	fmt.Fprintln(w, "  -q            Only print the final state")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -sources      Show where each value came from")
	fmt.Fprintln(w, "  -example      Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys (tui):")
	fmt.Fprintln(w, "  +/space click count, n create, j/k move, d/x eliminar, ? help, q quit")
}
