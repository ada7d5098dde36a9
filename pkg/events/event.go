// Package events implements the synthetic event dispatcher: one native
// listener per event kind installed at the render-target root, a per-node
// handler registry, and capture/bubble replay through a synthetic event
// wrapper.
package events

import "github.com/lumo-dev/lumo/pkg/dom"

// Handler is a registered event handler.
type Handler func(*Event)

// Event is the synthetic wrapper around a native event. It normalizes
// propagation control across the capture and bubble phases.
type Event struct {
	native             *dom.NativeEvent
	typ                string
	target             *dom.Node
	currentTarget      *dom.Node
	propagationStopped bool
	defaultPrevented   bool
}

// Type returns the event kind (e.g., "click").
func (e *Event) Type() string { return e.typ }

// Target returns the node the native event was aimed at.
func (e *Event) Target() *dom.Node { return e.target }

// CurrentTarget returns the node whose handler is currently running.
func (e *Event) CurrentTarget() *dom.Node { return e.currentTarget }

// Value returns the native event's input payload, if any.
func (e *Event) Value() string {
	if e.native == nil {
		return ""
	}
	return e.native.Value()
}

// PreventDefault cancels the event's default action. The cancellation is
// forwarded to the native event after dispatch completes.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation halts the walk: no further nodes see the event in
// either phase.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Native returns the underlying native event.
func (e *Event) Native() *dom.NativeEvent { return e.native }
