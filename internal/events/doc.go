// Package events dispatches typed notification events through a tree of targets.
//
// A Target is a node that listeners attach to. Targets form a chain through their
// parents; a shadow root marks the edge of an encapsulated subtree.
//
// # Propagation
//
// Dispatch runs the listeners of the originating target first. After that:
//
//   - an event with Bubbles set moves to the parent target, and so on up the chain
//   - leaving a shadow root for its host requires Composed
//   - StopPropagation ends the walk once the current target's listeners have run
//
// # Cancellation
//
// PreventDefault only has an effect on events created with Cancelable. Dispatch
// reports false when a listener canceled the event.
//
// # Detail payloads
//
// Built-in event types carry a detail described by an embedded JSON Schema
// (schema/events.schema.json). ValidateDetail checks an event against it.
//
//	counter-changed  {"count": <integer>}   bubbles, cancelable, composed
//	create           null                   default flags
package events
