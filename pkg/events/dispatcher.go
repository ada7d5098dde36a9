package events

import (
	"sort"
	"strings"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/telemetry"
)

const capturePhaseSuffix = "Capture"

// Dispatcher routes native events to component handlers. It installs at
// most one native listener per event kind at its root and replays each
// event through a capture walk (root toward target) followed by a bubble
// walk (target toward root) over the registered handlers.
type Dispatcher struct {
	doc  *dom.Document
	root *dom.Node
	sink telemetry.Sink

	// registry maps node -> event kind -> handler name -> handler.
	// Handler names keep their "on" prefix ("onClick", "onClickCapture")
	// so capture and bubble registrations for one kind coexist.
	registry  map[*dom.Node]map[string]map[string]Handler
	installed map[string]bool
}

// NewDispatcher creates a dispatcher rooted at root. Events whose target
// lies outside root's subtree are ignored.
func NewDispatcher(doc *dom.Document, root *dom.Node, sink telemetry.Sink) *Dispatcher {
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	return &Dispatcher{
		doc:       doc,
		root:      root,
		sink:      sink,
		registry:  make(map[*dom.Node]map[string]map[string]Handler),
		installed: make(map[string]bool),
	}
}

// Root returns the node the dispatcher listens at.
func (d *Dispatcher) Root() *dom.Node { return d.root }

// KindOf derives the native event kind from a handler prop name:
// "onClickCapture" and "onClick" both map to "click". The second result
// reports whether the name addresses the capture phase.
func KindOf(name string) (string, bool) {
	trimmed := strings.TrimPrefix(name, "on")
	capture := strings.HasSuffix(trimmed, capturePhaseSuffix)
	if capture {
		trimmed = strings.TrimSuffix(trimmed, capturePhaseSuffix)
	}
	return strings.ToLower(trimmed), capture
}

// Register binds a handler to node under the given prop name. The first
// registration for a kind installs the native root listener for it;
// later registrations for the same node and name replace the handler.
func (d *Dispatcher) Register(node *dom.Node, name string, h Handler) {
	if node == nil || h == nil {
		return
	}
	kind, _ := KindOf(name)
	if kind == "" {
		return
	}

	kinds := d.registry[node]
	if kinds == nil {
		kinds = make(map[string]map[string]Handler)
		d.registry[node] = kinds
	}
	handlers := kinds[kind]
	if handlers == nil {
		handlers = make(map[string]Handler)
		kinds[kind] = handlers
	}
	handlers[name] = h

	if !d.installed[kind] {
		d.installed[kind] = true
		d.doc.AddListener(d.root, kind, d.dispatch)
	}
}

// Deregister removes the handler registered under name on node.
func (d *Dispatcher) Deregister(node *dom.Node, name string) {
	kind, _ := KindOf(name)
	kinds := d.registry[node]
	if kinds == nil {
		return
	}
	handlers := kinds[kind]
	delete(handlers, name)
	if len(handlers) == 0 {
		delete(kinds, kind)
	}
	if len(kinds) == 0 {
		delete(d.registry, node)
	}
	// The native root listener for the kind stays installed; re-installing
	// per registration churn is not worth tracking refcounts for.
}

// DeregisterAll removes every handler bound to node. Called by the
// unmount cascade when node leaves the document.
func (d *Dispatcher) DeregisterAll(node *dom.Node) {
	delete(d.registry, node)
}

// HandlerCount returns the number of handlers registered on node.
func (d *Dispatcher) HandlerCount(node *dom.Node) int {
	total := 0
	for _, handlers := range d.registry[node] {
		total += len(handlers)
	}
	return total
}

// Close removes all native listeners and clears the registry.
func (d *Dispatcher) Close() {
	d.doc.RemoveListeners(d.root)
	d.registry = make(map[*dom.Node]map[string]map[string]Handler)
	d.installed = make(map[string]bool)
}

// dispatch is the single native listener body. It builds the ancestor
// path from the target up to the root, then walks it twice: root toward
// target firing capture handlers, target toward root firing bubble
// handlers. StopPropagation halts the remaining walk in both phases.
func (d *Dispatcher) dispatch(native *dom.NativeEvent) {
	target := native.Target()
	if target == nil || !d.root.Contains(target) {
		return
	}

	// path[0] is the target, path[len-1] is the outermost ancestor below
	// the root. The root itself never receives synthetic dispatch.
	var path []*dom.Node
	for cur := target; cur != nil && cur != d.root; cur = cur.Parent() {
		path = append(path, cur)
	}

	ev := &Event{native: native, typ: native.Type(), target: target}

	// Capture phase: root toward target.
	for i := len(path) - 1; i >= 0 && !ev.propagationStopped; i-- {
		d.invokePhase(ev, path[i], true)
	}

	// Bubble phase: target toward root.
	for i := 0; i < len(path) && !ev.propagationStopped; i++ {
		d.invokePhase(ev, path[i], false)
	}

	if ev.defaultPrevented {
		native.PreventDefault()
	}
}

// invokePhase fires node's handlers for the event's kind that belong to
// the given phase, in sorted name order so dispatch is deterministic.
// A panicking handler is recovered and reported; the remaining handlers
// still run.
func (d *Dispatcher) invokePhase(ev *Event, node *dom.Node, capture bool) {
	kinds := d.registry[node]
	if kinds == nil {
		return
	}
	handlers := kinds[ev.typ]
	if len(handlers) == 0 {
		return
	}
	ev.currentTarget = node
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		if strings.HasSuffix(name, capturePhaseSuffix) == capture {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		d.invoke(ev, node, name, handlers[name])
		if ev.propagationStopped {
			return
		}
	}
}

func (d *Dispatcher) invoke(ev *Event, node *dom.Node, name string, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			d.sink.Report("event", "Event handler panicked", map[string]any{
				"code":    "E400",
				"event":   ev.typ,
				"handler": name,
				"node":    node.NID(),
				"panic":   r,
			})
		}
	}()
	h(ev)
}
