package dom

// NativeEvent is a raw input event delivered to the document. The engine's
// event dispatcher wraps it in a synthetic event before invoking handlers.
type NativeEvent struct {
	typ       string
	target    *Node
	value     string
	prevented bool
}

// NewNativeEvent constructs a native event aimed at target. value carries
// the input payload for value-bearing events (input, change).
func NewNativeEvent(typ string, target *Node, value string) *NativeEvent {
	return &NativeEvent{typ: typ, target: target, value: value}
}

// Type returns the event kind (e.g., "click").
func (e *NativeEvent) Type() string { return e.typ }

// Target returns the node the event was aimed at.
func (e *NativeEvent) Target() *Node { return e.target }

// Value returns the input payload, if any.
func (e *NativeEvent) Value() string { return e.value }

// PreventDefault marks the event's default action as cancelled.
func (e *NativeEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether the default action was cancelled.
func (e *NativeEvent) DefaultPrevented() bool { return e.prevented }

// AddListener installs a capture-mode listener for the event kind at the
// given root. The engine installs exactly one listener per kind per root.
func (d *Document) AddListener(root *Node, kind string, fn func(*NativeEvent)) {
	if root == nil || fn == nil {
		return
	}
	kinds := d.listeners[root]
	if kinds == nil {
		kinds = make(map[string][]func(*NativeEvent))
		d.listeners[root] = kinds
	}
	kinds[kind] = append(kinds[kind], fn)
}

// RemoveListeners removes all listeners installed at the given root.
func (d *Document) RemoveListeners(root *Node) {
	delete(d.listeners, root)
}

// Emit delivers a native event: every root-level listener for the event's
// kind whose root contains the target is invoked, mirroring a real target
// environment where the engine listens in capture mode at the root.
func (d *Document) Emit(evt *NativeEvent) {
	if evt == nil || evt.target == nil {
		return
	}
	for root, kinds := range d.listeners {
		if !root.contains(evt.target) {
			continue
		}
		for _, fn := range kinds[evt.typ] {
			fn(evt)
		}
	}
}
