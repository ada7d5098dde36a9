package runtime

import (
	"fmt"

	"github.com/lumo-dev/lumo/internal/errors"
	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/hooks"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// Instance is one mounted component: the lifecycle controller owning its
// props, local state or hook store, pending-state merge, and its most
// recent rendered output. It implements hooks.Owner for its hook store.
//
// Lifecycle: Unmounted -> Mounted -> (updating)* -> Unmounted. "Updating"
// is bounded by one commit, never persisted.
type Instance struct {
	rt   *root
	comp *vdom.ComponentRef

	props vdom.Props

	// Exactly one of the two is populated, fixed by the component kind.
	stateful vdom.StatefulComponent
	store    *hooks.Store

	state        vdom.State
	pendingState vdom.State
	callbacks    []func()

	mounted          bool
	renderInProgress bool
	forced           bool

	// parent is the enclosing instance. Non-owning: used only for the
	// upward error-boundary walk.
	parent *Instance

	// rendered is the output subtree from the last successful render;
	// domParent is the render-target node that output is attached under.
	rendered  *vdom.VNode
	domParent *dom.Node
	vnode     *vdom.VNode
}

// newInstance constructs an instance for a component node. Stateful
// components are constructed once here and persist across re-renders.
func newInstance(rt *root, v *vdom.VNode, parent *Instance) (*Instance, error) {
	in := &Instance{rt: rt, comp: v.Comp, props: v.Props, parent: parent, vnode: v}

	switch v.Comp.Kind() {
	case vdom.Stateful:
		sc := v.Comp.Construct()
		if sc == nil {
			return nil, errors.New("E301").With("component", v.Comp.Name())
		}
		in.stateful = sc
		if init, ok := sc.(vdom.Initializer); ok {
			in.state = init.InitialState()
		}
	default:
		in.store = hooks.NewStore()
	}
	return in, nil
}

// Name returns the component's display name.
func (in *Instance) Name() string { return in.comp.Name() }

// Props returns the instance's current props.
func (in *Instance) Props() vdom.Props { return in.props }

// State returns the instance's committed local state.
func (in *Instance) State() vdom.State { return in.state }

// Mounted reports whether the instance is in the document.
func (in *Instance) Mounted() bool { return in.mounted }

// SetState merges a partial state update into the pending state. partial
// is a vdom.State map or a func(state, props) vdom.State evaluated against
// the state a commit would currently observe. Later merges override
// earlier keys. Callbacks run after the next commit, in FIFO order, even
// when the update gate vetoes the commit.
func (in *Instance) SetState(partial any, callbacks ...func()) {
	var delta vdom.State
	switch p := partial.(type) {
	case nil:
	case vdom.State:
		delta = p
	case map[string]any:
		delta = vdom.State(p)
	case func(vdom.State, vdom.Props) vdom.State:
		delta = p(in.state.Merge(in.pendingState), in.props)
	default:
		panic(errors.New("E501").
			With("detail", fmt.Sprintf("invalid setState partial %T", partial)))
	}

	in.pendingState = in.pendingState.Merge(delta)
	in.callbacks = append(in.callbacks, callbacks...)

	if in.mounted && !in.renderInProgress {
		in.rt.eng.scheduler.Schedule(in)
	}
}

// ForceUpdate enqueues a re-render that bypasses the update gate's state
// veto and does not touch pending state.
func (in *Instance) ForceUpdate(callbacks ...func()) {
	in.forced = true
	in.callbacks = append(in.callbacks, callbacks...)
	if in.mounted && !in.renderInProgress {
		in.rt.eng.scheduler.Schedule(in)
	}
}

// Invalidate implements hooks.Owner: a hook setter changed a value and the
// instance needs a re-render. Requests made mid-render or after unmount
// are dropped.
func (in *Instance) Invalidate() {
	if in.mounted && !in.renderInProgress {
		in.rt.eng.scheduler.Schedule(in)
	}
}

// QueueEffect implements hooks.Owner.
func (in *Instance) QueueEffect(fn func()) {
	in.rt.eng.scheduler.QueueEffect(fn)
}

// ReportError implements hooks.Owner.
func (in *Instance) ReportError(kind, message string, context map[string]any) {
	in.rt.eng.sink.Report(kind, message, context)
}

// commit applies the pending update. Invoked only by the scheduler.
//
// Stateful path: merge pending state, consult the update gate, and on a
// veto discard the pending state without applying it. The veto skips the
// re-render but queued callbacks still run. Functional path: hook records
// were already updated by their setters, so commit is just a re-render.
func (in *Instance) commit() {
	if !in.mounted {
		in.pendingState = nil
		in.forced = false
		in.callbacks = nil
		return
	}

	forced := in.forced
	in.forced = false

	if in.stateful == nil {
		in.rerender()
		in.runCallbacks()
		return
	}

	if len(in.pendingState) == 0 {
		if forced {
			in.rerender()
			in.notifyUpdated(in.props, in.state)
		}
		in.runCallbacks()
		return
	}

	nextState := in.state.Merge(in.pendingState)
	if gate, ok := in.stateful.(vdom.UpdateGater); ok && !gate.ShouldUpdate(in.props, nextState) {
		in.pendingState = nil
		if forced {
			in.rerender()
			in.notifyUpdated(in.props, in.state)
		}
		in.runCallbacks()
		return
	}

	prevState := in.state
	in.state = nextState
	in.pendingState = nil
	in.rerender()
	in.notifyUpdated(in.props, prevState)
	in.runCallbacks()
}

// updateProps is the reconciler's path for a reused instance receiving new
// props: pending state is folded in under the same gate rule, then the
// instance re-renders synchronously inside the enclosing patch.
func (in *Instance) updateProps(next vdom.Props) {
	prevProps := in.props
	nextState := in.state.Merge(in.pendingState)

	if gate, ok := in.stateful.(vdom.UpdateGater); in.stateful != nil && ok &&
		!gate.ShouldUpdate(next, nextState) {
		in.props = next
		in.pendingState = nil
		in.runCallbacks()
		return
	}

	prevState := in.state
	in.props = next
	in.state = nextState
	in.pendingState = nil
	in.rerender()
	in.notifyUpdated(prevProps, prevState)
	in.runCallbacks()
}

// render evaluates the component to its virtual output. A panic inside the
// component is converted into a ComponentError.
func (in *Instance) render() (out *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.FromError(e, "E300").With("component", in.Name())
			} else {
				err = errors.New("E300").
					With("component", in.Name()).
					With("panic", fmt.Sprint(r))
			}
		}
		in.renderInProgress = false
	}()

	in.renderInProgress = true
	in.rt.eng.metrics.render()

	if in.stateful != nil {
		return in.stateful.Render(in.props, in.state), nil
	}

	ctx := hooks.Begin(in.store, in, in.rt.eng.debug)
	out = in.comp.RenderFunc()(ctx, in.props)
	ctx.End()
	return out, nil
}

// rerender re-evaluates the component and reconciles the new output
// against the previous one in place.
func (in *Instance) rerender() {
	out, err := in.render()
	if err != nil {
		if in.rt.raise(in, err, "update") {
			return
		}
		out = placeholderNode(in.Name(), err)
	}
	in.rt.patch(in.rendered, out, in.domParent, in)
	in.rendered = out
	if in.vnode != nil {
		in.vnode.BindLive(firstLive(out))
	}
}

func (in *Instance) notifyUpdated(prevProps vdom.Props, prevState vdom.State) {
	if du, ok := in.stateful.(vdom.DidUpdater); ok {
		du.DidUpdate(prevProps, prevState)
	}
}

func (in *Instance) runCallbacks() {
	cbs := in.callbacks
	in.callbacks = nil
	for _, cb := range cbs {
		cb()
	}
}

// catcher returns the instance's error-boundary hook, if it has one.
func (in *Instance) catcher() (vdom.ErrorCatcher, bool) {
	if in.stateful == nil {
		return nil, false
	}
	c, ok := in.stateful.(vdom.ErrorCatcher)
	return c, ok
}

// prepareUnmount runs the pre-unmount hook and pending effect cleanups.
// The unmount cascade calls it before descending into the instance's
// output; the instance is marked unmounted only after the cascade
// finishes with its subtree.
func (in *Instance) prepareUnmount() {
	if wu, ok := in.stateful.(vdom.WillUnmounter); ok {
		wu.WillUnmount()
	}
	if in.store != nil {
		in.store.RunCleanups()
	}
}

// finishUnmount marks the instance unmounted. Scheduled updates for it
// become no-ops from here on.
func (in *Instance) finishUnmount() {
	in.mounted = false
}
