package events

// Listener handles an event.
type Listener func(*Event)

type listenerEntry struct {
	id      int
	typ     Type
	fn      Listener
	removed bool
}

// Target is a node in the host tree that events are dispatched on.
// Targets are not safe for concurrent use.
type Target struct {
	name       string
	parent     *Target
	shadowRoot bool
	listeners  []*listenerEntry
	nextID     int
}

// NewTarget creates a target under parent. parent may be nil.
func NewTarget(name string, parent *Target) *Target {
	return &Target{
		name:   name,
		parent: parent,
	}
}

// NewShadowRoot creates an encapsulated subtree root attached to host.
// Events leave it for host only when they are composed.
func NewShadowRoot(host *Target) *Target {
	t := NewTarget("#shadow-root", host)
	t.shadowRoot = true
	return t
}

// Name returns the target name.
func (t *Target) Name() string {
	return t.name
}

// Parent returns the parent target, or nil at the root.
func (t *Target) Parent() *Target {
	return t.parent
}

// IsShadowRoot reports whether t is a shadow root.
func (t *Target) IsShadowRoot() bool {
	return t.shadowRoot
}

// AddListener registers fn for events of typ. TypeAny receives every event.
// Listeners on a target run in registration order regardless of type.
// The returned function removes the listener; a listener removed during a
// dispatch does not run for the rest of it.
func (t *Target) AddListener(typ Type, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	t.nextID++
	entry := &listenerEntry{id: t.nextID, typ: typ, fn: fn}
	t.listeners = append(t.listeners, entry)

	return func() {
		for i, e := range t.listeners {
			if e.id == entry.id {
				e.removed = true
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (t *Target) ListenerCount(typ Type) int {
	n := 0
	for _, e := range t.listeners {
		if e.typ == typ {
			n++
		}
	}
	return n
}

// Dispatch delivers e starting at t and returns false if a listener canceled it.
func (t *Target) Dispatch(e *Event) bool {
	if e == nil {
		return true
	}
	e.target = t
	e.stopped = false
	e.canceled = false

	for cur := t; cur != nil; cur = cur.parent {
		cur.invoke(e)
		if e.stopped || !e.Bubbles {
			break
		}
		if cur.shadowRoot && !e.Composed {
			break
		}
	}
	e.currentTarget = nil

	return !e.canceled
}

// invoke runs the listeners on t that match e, in registration order.
func (t *Target) invoke(e *Event) {
	if len(t.listeners) == 0 {
		return
	}
	e.currentTarget = t

	// Listeners added during dispatch wait for the next event.
	pending := append([]*listenerEntry(nil), t.listeners...)
	for _, entry := range pending {
		if entry.removed {
			continue
		}
		if entry.typ != e.Type && entry.typ != TypeAny {
			continue
		}
		entry.fn(e)
	}
}
