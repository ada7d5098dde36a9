package vdom

import "github.com/lumo-dev/lumo/pkg/hooks"

// ComponentKind distinguishes the two component styles. It is chosen once
// at ComponentRef construction time, never inferred per render.
type ComponentKind uint8

const (
	Functional ComponentKind = iota // hooks-based render function
	Stateful                        // instance with local state and lifecycle
)

// String returns the string representation of the ComponentKind.
func (k ComponentKind) String() string {
	switch k {
	case Functional:
		return "Functional"
	case Stateful:
		return "Stateful"
	default:
		return "Unknown"
	}
}

// State is a stateful component's local state. setState merges partial
// maps into it shallowly, last write wins per key.
type State map[string]any

// Merge returns a new State combining s with partial; keys in partial
// override keys in s. Nil inputs are handled.
func (s State) Merge(partial State) State {
	if len(partial) == 0 && s != nil {
		return s
	}
	out := make(State, len(s)+len(partial))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// RenderFunc is a functional component: a pure function of hook context
// and props to virtual output. Hook calls inside it are addressed by call
// order, so the same hooks must run in the same order on every render.
type RenderFunc func(ctx *hooks.Ctx, props Props) *VNode

// StatefulComponent is the class-style component contract. One value is
// constructed per mounted instance and persists across its re-renders.
type StatefulComponent interface {
	Render(props Props, state State) *VNode
}

// Initializer provides the instance's initial local state.
type Initializer interface {
	InitialState() State
}

// UpdateGater vetoes re-renders. Returning false from ShouldUpdate
// discards the pending state entirely: the state write is skipped, not
// just the render.
type UpdateGater interface {
	ShouldUpdate(nextProps Props, nextState State) bool
}

// DidUpdater is notified after a committed update, with the values from
// before the commit.
type DidUpdater interface {
	DidUpdate(prevProps Props, prevState State)
}

// WillUnmounter is notified immediately before the instance's subtree is
// torn down.
type WillUnmounter interface {
	WillUnmount()
}

// ErrorInfo carries diagnostic context for a captured render error.
type ErrorInfo struct {
	// Component is the name of the component that failed.
	Component string

	// Phase is where the failure occurred ("render", "mount", "update").
	Phase string
}

// ErrorCatcher marks a stateful component as an error boundary. CatchError
// is invoked with errors thrown during the instance's own render or
// propagated from a descendant; returning true means "handled" and the
// boundary re-renders (typically producing fallback UI).
type ErrorCatcher interface {
	CatchError(err error, info ErrorInfo) bool
}

// ComponentRef is a component's identity: reconciliation reuses an
// instance only when the previous and next nodes reference the same
// ComponentRef pointer.
type ComponentRef struct {
	kind    ComponentKind
	name    string
	fn      RenderFunc
	factory func() StatefulComponent
}

// Func registers a functional component.
func Func(name string, fn RenderFunc) *ComponentRef {
	return &ComponentRef{kind: Functional, name: name, fn: fn}
}

// Class registers a stateful component. factory constructs one value per
// mounted instance.
func Class(name string, factory func() StatefulComponent) *ComponentRef {
	return &ComponentRef{kind: Stateful, name: name, factory: factory}
}

// Kind returns the component kind.
func (c *ComponentRef) Kind() ComponentKind { return c.kind }

// Name returns the component's display name.
func (c *ComponentRef) Name() string { return c.name }

// RenderFunc returns the render function of a functional component.
func (c *ComponentRef) RenderFunc() RenderFunc { return c.fn }

// Construct builds a fresh stateful component value.
func (c *ComponentRef) Construct() StatefulComponent {
	if c.factory == nil {
		return nil
	}
	return c.factory()
}
