// Package widget implements the todo-list widget: a counter, a task list, and the
// notification events they emit.
package widget

import (
	"github.com/nibzard/todolist-go/internal/events"
)

// Defaults applied by New.
const (
	DefaultName        = "MUNDO"
	DefaultPlaceholder = "Todo"
	DefaultTaskCount   = 6
)

// DefaultTasks returns the placeholder list a new widget starts with.
func DefaultTasks() []string {
	tasks := make([]string, DefaultTaskCount)
	for i := range tasks {
		tasks[i] = DefaultPlaceholder
	}
	return tasks
}

// RenderScheduler is implemented by whatever draws the widget.
// ScheduleRender is called after every state change.
type RenderScheduler interface {
	ScheduleRender()
}

// RenderFunc adapts a function to RenderScheduler.
type RenderFunc func()

// ScheduleRender calls f.
func (f RenderFunc) ScheduleRender() {
	f()
}

// Option configures a Widget.
type Option func(*Widget)

// WithName sets the initial name.
func WithName(name string) Option {
	return func(w *Widget) {
		w.name = name
	}
}

// WithCount sets the initial count.
func WithCount(count int) Option {
	return func(w *Widget) {
		w.count = count
	}
}

// WithTasks replaces the placeholder tasks. A nil slice keeps the placeholders;
// an empty non-nil slice starts with no tasks.
func WithTasks(tasks []string) Option {
	return func(w *Widget) {
		if tasks == nil {
			return
		}
		w.tasks = append(make([]string, 0, len(tasks)), tasks...)
	}
}

// WithRenderer sets the render scheduler.
func WithRenderer(r RenderScheduler) Option {
	return func(w *Widget) {
		w.renderer = r
	}
}

// WithParent attaches the widget's event target under parent.
func WithParent(parent *events.Target) Option {
	return func(w *Widget) {
		w.parent = parent
	}
}

// WithTag sets the tag name used for the widget's event target.
func WithTag(tag string) Option {
	return func(w *Widget) {
		w.tag = tag
	}
}

// Widget holds the todo list state. It is not safe for concurrent use; all calls
// are expected from the goroutine handling user input.
type Widget struct {
	tag      string
	name     string
	count    int
	tasks    []string
	renderer RenderScheduler
	parent   *events.Target
	target   *events.Target
	renders  uint64
}

// New creates a widget with count 0, name "MUNDO", and six placeholder tasks,
// then applies opts.
func New(opts ...Option) *Widget {
	w := &Widget{
		tag:   DefaultTag,
		name:  DefaultName,
		tasks: DefaultTasks(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.target = events.NewTarget(w.tag, w.parent)
	return w
}

// Target returns the event target events are dispatched on.
func (w *Widget) Target() *events.Target {
	return w.target
}

// SetRenderer replaces the render scheduler. nil disables rendering.
func (w *Widget) SetRenderer(r RenderScheduler) {
	w.renderer = r
}

// Increment adds one to the counter and dispatches counter-changed with the new
// value. It returns false if a listener canceled the event; the count changes
// either way.
func (w *Widget) Increment() bool {
	w.count++
	ok := w.target.Dispatch(events.NewCounterChanged(w.count))
	w.scheduleRender()
	return ok
}

// RequestCreate dispatches a create event. It does not add a task; a listener
// is expected to call AddTask.
func (w *Widget) RequestCreate() {
	w.target.Dispatch(events.NewCreate())
}

// AddTask appends task to the list. Any string is accepted.
func (w *Widget) AddTask(task string) {
	w.tasks = append(w.tasks, task)
	w.scheduleRender()
}

// RemoveTask removes the task at index, shifting later tasks down.
// An index outside the list leaves it unchanged.
func (w *Widget) RemoveTask(index int) {
	if index >= 0 && index < len(w.tasks) {
		w.tasks = append(w.tasks[:index], w.tasks[index+1:]...)
	}
	w.scheduleRender()
}

// Name returns the display name.
func (w *Widget) Name() string {
	return w.name
}

// SetName sets the display name.
func (w *Widget) SetName(name string) {
	w.name = name
	w.scheduleRender()
}

// Count returns the counter value.
func (w *Widget) Count() int {
	return w.count
}

// SetCount sets the counter without dispatching counter-changed.
func (w *Widget) SetCount(count int) {
	w.count = count
	w.scheduleRender()
}

// Tasks returns a copy of the task list.
func (w *Widget) Tasks() []string {
	out := make([]string, len(w.tasks))
	copy(out, w.tasks)
	return out
}

// Len returns the number of tasks.
func (w *Widget) Len() int {
	return len(w.tasks)
}

// Task returns the task at index.
func (w *Widget) Task(index int) (string, bool) {
	if index < 0 || index >= len(w.tasks) {
		return "", false
	}
	return w.tasks[index], true
}

// Tag returns the tag name the widget was created with.
func (w *Widget) Tag() string {
	return w.tag
}

// RenderGeneration returns how many renders have been requested.
func (w *Widget) RenderGeneration() uint64 {
	return w.renders
}

// Greeting returns the greeting for the widget's own name.
func (w *Widget) Greeting() string {
	return SayHello(w.name)
}

// SayHello formats a greeting.
func SayHello(name string) string {
	return "Hello, " + name
}

func (w *Widget) scheduleRender() {
	w.renders++
	if w.renderer != nil {
		w.renderer.ScheduleRender()
	}
}
