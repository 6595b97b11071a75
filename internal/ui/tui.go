// Package ui hosts the todo widget in a terminal interface.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/events"
	"github.com/nibzard/todolist-go/internal/widget"
)

// DocumentName names the root event target the widget is attached to.
const DocumentName = "#document"

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	logger    *log.Logger
	listeners []events.Listener
}

// WithLogger sets the logger used for host diagnostics.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// WithEventListener attaches fn to the widget's target for every event type.
func WithEventListener(fn events.Listener) TUIOption {
	return func(c *tuiConfig) {
		c.listeners = append(c.listeners, fn)
	}
}

// RunTUI starts the TUI with the given config.
func RunTUI(ctx context.Context, cfg *config.Config, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model, err := NewModel(cfg, opts...)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// Model is the Bubble Tea model hosting one widget. It is the widget's render
// scheduler and the collaborator that answers create events.
type Model struct {
	cfg    *config.Config
	logger *log.Logger
	keys   keyMap
	styles styles

	document *events.Target
	widget   *widget.Widget

	input     textinput.Model
	prompting bool
	cursor    int
	status    string
	showHelp  bool
	renders   int
	width     int
}

// NewModel creates the widget named by cfg.Tag under a document target and wires
// the host listeners.
func NewModel(cfg *config.Config, opts ...TUIOption) (*Model, error) {
	c := &tuiConfig{}
	for _, opt := range opts {
		opt(c)
	}
	logger := c.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		cfg:      cfg,
		logger:   logger,
		keys:     defaultKeyMap(),
		styles:   newStyles(cfg.Width),
		document: events.NewTarget(DocumentName, nil),
	}

	tag := cfg.Tag
	if tag == "" {
		tag = widget.DefaultTag
	}
	wopts := append(cfg.WidgetOptions(), widget.WithParent(m.document), widget.WithRenderer(m))
	w, err := widget.Create(tag, wopts...)
	if err != nil {
		return nil, fmt.Errorf("create widget %q: %w", tag, err)
	}
	m.widget = w

	for _, fn := range c.listeners {
		w.Target().AddListener(events.TypeAny, fn)
	}
	// create does not bubble, so it is observed on the widget itself.
	w.Target().AddListener(events.TypeCreate, m.onCreate)
	m.document.AddListener(events.TypeCounterChanged, m.onCounterChanged)

	m.input = textinput.New()
	m.input.Placeholder = "new task"
	m.input.Prompt = "> "
	m.input.Width = max(cfg.Width-8, 10)

	return m, nil
}

// Widget returns the hosted widget.
func (m *Model) Widget() *widget.Widget {
	return m.widget
}

// Document returns the root event target.
func (m *Model) Document() *events.Target {
	return m.document
}

// Cursor returns the selected task index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Prompting reports whether the create prompt is open.
func (m *Model) Prompting() bool {
	return m.prompting
}

// Status returns the last counter-changed payload shown in the status line.
func (m *Model) Status() string {
	return m.status
}

// ScheduleRender counts a render request. Bubble Tea redraws after every
// Update, so nothing else is needed here.
func (m *Model) ScheduleRender() {
	m.renders++
}

// RenderRequests returns how many renders the widget has requested.
func (m *Model) RenderRequests() int {
	return m.renders
}

func (m *Model) onCreate(e *events.Event) {
	m.logger.Debug("Opening create prompt", "event", e.ID)
	m.prompting = true
	m.input.Reset()
	m.input.Focus()
}

func (m *Model) onCounterChanged(e *events.Event) {
	data, err := json.Marshal(e.Detail)
	if err != nil {
		m.logger.Warn("Cannot encode event detail", "type", e.Type, "err", err)
		return
	}
	m.status = fmt.Sprintf("%s %s", e.Type, data)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	if m.prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Increment):
		if !m.widget.Increment() {
			m.logger.Debug("counter-changed was canceled", "count", m.widget.Count())
		}
	case key.Matches(msg, m.keys.Create):
		m.widget.RequestCreate()
		if m.prompting {
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.widget.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Remove):
		m.widget.RemoveTask(m.cursor)
		m.clampCursor()
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.widget.AddTask(m.input.Value())
		m.cursor = m.widget.Len() - 1
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.widget.Len() {
		m.cursor = m.widget.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.title.Render("TODO LIST"))
	b.WriteString("\n\n")
	b.WriteString(s.button.Render(fmt.Sprintf("[ Click Count: %d ]", m.widget.Count())))
	b.WriteString("  ")
	b.WriteString(s.button.Render("[ CREATE ]"))
	b.WriteString("\n")
	b.WriteString(s.greeting.Render(m.widget.Greeting()))
	b.WriteString("\n\n")

	tasks := m.widget.Tasks()
	if len(tasks) == 0 {
		b.WriteString(s.muted.Render("  No tasks."))
		b.WriteString("\n")
	}
	for i, task := range tasks {
		row := fmt.Sprintf("%s  %s", task, s.remove.Render("[ ELIMINAR ]"))
		if i == m.cursor {
			b.WriteString(s.selected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(s.status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.muted.Render(m.helpLine()))

	box := s.box
	if m.width > 0 && m.width-2 < m.cfg.Width {
		box = box.Width(max(m.width-2, config.MinWidth))
	}
	return box.Render(b.String())
}

func (m *Model) helpLine() string {
	bindings := m.keys.shortHelp()
	switch {
	case m.prompting:
		bindings = m.keys.promptHelp()
	case m.showHelp:
		bindings = m.keys.fullHelp()
	}

	sep := " | "
	if m.showHelp && !m.prompting {
		sep = "\n"
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return strings.Join(parts, sep)
}

type styles struct {
	box      lipgloss.Style
	title    lipgloss.Style
	button   lipgloss.Style
	greeting lipgloss.Style
	selected lipgloss.Style
	remove   lipgloss.Style
	status   lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(width int) styles {
	return styles{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7f849c")).
			Padding(1, 2).
			Width(width),
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
		button:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true),
		greeting: lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true),
		remove:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
