package events

import (
	"time"

	"github.com/google/uuid"
)

// Type names an event.
type Type string

const (
	// TypeCounterChanged fires when the counter button is clicked.
	TypeCounterChanged Type = "counter-changed"
	// TypeCreate fires when the create button is clicked.
	TypeCreate Type = "create"
	// TypeAny matches every event type when used as a listener type.
	TypeAny Type = "*"
)

// CounterChanged is the detail carried by counter-changed events.
type CounterChanged struct {
	Count int `json:"count"`
}

// Init holds the delivery flags and detail for a new event.
type Init struct {
	Bubbles    bool
	Cancelable bool
	Composed   bool
	Detail     any
}

// Event is a notification delivered to listeners.
type Event struct {
	ID         string
	Type       Type
	Detail     any
	Bubbles    bool
	Cancelable bool
	Composed   bool
	Time       time.Time

	target        *Target
	currentTarget *Target
	stopped       bool
	canceled      bool
}

// New creates an event of the given type.
func New(typ Type, init Init) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Detail:     init.Detail,
		Bubbles:    init.Bubbles,
		Cancelable: init.Cancelable,
		Composed:   init.Composed,
		Time:       time.Now().UTC(),
	}
}

// NewCounterChanged creates a counter-changed event for count.
func NewCounterChanged(count int) *Event {
	return New(TypeCounterChanged, Init{
		Bubbles:    true,
		Cancelable: true,
		Composed:   true,
		Detail:     CounterChanged{Count: count},
	})
}

// NewCreate creates a create event. It has no detail and default flags.
func NewCreate() *Event {
	return New(TypeCreate, Init{})
}

// Target returns the target the event was dispatched on.
func (e *Event) Target() *Target {
	return e.target
}

// CurrentTarget returns the target whose listeners are running.
// It is nil outside of a dispatch.
func (e *Event) CurrentTarget() *Target {
	return e.currentTarget
}

// StopPropagation prevents the event from reaching further targets.
// Listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PreventDefault cancels the event if it is cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.canceled = true
	}
}

// DefaultPrevented reports whether a listener canceled the event.
func (e *Event) DefaultPrevented() bool {
	return e.canceled
}

// Count returns the counter value of a counter-changed event.
func (e *Event) Count() (int, bool) {
	switch d := e.Detail.(type) {
	case CounterChanged:
		return d.Count, true
	case *CounterChanged:
		if d == nil {
			return 0, false
		}
		return d.Count, true
	default:
		return 0, false
	}
}
