package runtime

import (
	"strconv"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// mount creates the live subtree for v and attaches it under parent,
// before ref (nil ref appends). owner is the enclosing component instance,
// threaded down for the error-boundary walk.
func (rt *root) mount(v *vdom.VNode, parent, ref *dom.Node, owner *Instance) {
	if v == nil {
		return
	}
	doc := rt.eng.doc

	switch v.Kind {
	case vdom.KindText:
		n := doc.CreateNode(v.Text, true)
		v.BindLive(n)
		rt.insert(parent, n, ref)

	case vdom.KindElement:
		n := doc.CreateNode(v.Tag, false)
		v.BindLive(n)
		rt.applyProps(n, nil, v.Props)
		for _, c := range v.Children {
			rt.mount(c, n, nil, owner)
		}
		rt.insert(parent, n, ref)

	case vdom.KindFragment:
		for _, c := range v.Children {
			rt.mount(c, parent, ref, owner)
		}

	case vdom.KindPortal:
		if v.Container == nil {
			rt.eng.sink.Report("render", "Portal container missing", map[string]any{
				"code": "E103",
			})
			return
		}
		for _, c := range v.Children {
			rt.mount(c, v.Container, nil, owner)
		}

	case vdom.KindComponent:
		rt.mountComponent(v, parent, ref, owner)
	}
}

// mountComponent constructs the instance, renders it, and mounts its
// output. A render failure ascends the boundary chain; unhandled failures
// degrade to a visible placeholder instead of aborting the tree.
func (rt *root) mountComponent(v *vdom.VNode, parent, ref *dom.Node, owner *Instance) {
	inst, err := newInstance(rt, v, owner)
	if err != nil {
		rt.eng.sink.Report("component", "Component construction failed", map[string]any{
			"code":      "E301",
			"component": v.Comp.Name(),
			"error":     err.Error(),
		})
		rt.mount(placeholderNode(v.Comp.Name(), err), parent, ref, owner)
		return
	}
	v.BindInstance(inst)
	inst.domParent = parent

	out, err := inst.render()
	if err != nil {
		if rt.raise(inst, err, "mount") {
			return
		}
		out = placeholderNode(inst.Name(), err)
	}

	inst.rendered = out
	rt.mount(out, parent, ref, inst)
	inst.mounted = true
	v.BindLive(firstLive(out))
}

// patch reconciles one tree position: prev was rendered there before, next
// is wanted there now.
func (rt *root) patch(prev, next *vdom.VNode, parent *dom.Node, owner *Instance) {
	switch {
	case prev == nil && next == nil:
		return
	case prev == nil:
		rt.mount(next, parent, nil, owner)
		return
	case next == nil:
		rt.unmount(prev, parent, true)
		return
	case !vdom.SameIdentity(prev, next):
		rt.replace(prev, next, parent, owner)
		return
	}

	switch next.Kind {
	case vdom.KindText:
		n := prev.LiveNode()
		if n == nil {
			rt.mount(next, parent, nil, owner)
			return
		}
		next.BindLive(n)
		rt.eng.doc.SetText(n, next.Text)

	case vdom.KindElement:
		n := prev.LiveNode()
		if n == nil {
			rt.mount(next, parent, nil, owner)
			return
		}
		next.BindLive(n)
		rt.applyProps(n, prev.Props, next.Props)
		rt.reconcileChildren(prev.Children, next.Children, n, owner)

	case vdom.KindFragment:
		rt.reconcileChildren(prev.Children, next.Children, parent, owner)
		next.BindLive(firstLive(next))

	case vdom.KindPortal:
		if prev.Container != next.Container {
			rt.unmount(prev, parent, true)
			rt.mount(next, parent, nil, owner)
			return
		}
		rt.reconcileChildren(prev.Children, next.Children, next.Container, owner)

	case vdom.KindComponent:
		inst, _ := prev.Instance().(*Instance)
		if inst == nil || !inst.mounted {
			rt.mount(next, parent, nil, owner)
			return
		}
		next.BindInstance(inst)
		inst.vnode = next
		inst.domParent = parent
		inst.updateProps(next.Props)
		next.BindLive(firstLive(inst.rendered))
	}
}

// replace swaps the subtree at a position: the old one is unmounted, the
// new one created. Single-node swaps go through ReplaceChild so observers
// see one structural operation.
func (rt *root) replace(prev, next *vdom.VNode, parent *dom.Node, owner *Instance) {
	oldLive := firstLive(prev)

	if oldLive != nil && parent != nil && singleLiveKind(prev) && singleLiveKind(next) {
		rt.mount(next, nil, nil, owner)
		rt.eng.doc.ReplaceChild(parent, next.LiveNode(), oldLive)
		rt.unmount(prev, parent, false)
		return
	}

	rt.mount(next, parent, oldLive, owner)
	rt.unmount(prev, parent, true)
}

// singleLiveKind reports whether the node maps to exactly one live node.
func singleLiveKind(v *vdom.VNode) bool {
	return v.Kind == vdom.KindElement || v.Kind == vdom.KindText
}

// unmount tears a subtree down depth-first: component pre-unmount hooks
// fire first, handler registrations are removed, children are recursed
// into, and instances are marked unmounted last. detach controls whether
// the top-level live node is physically removed from parent; descendants
// leave with their ancestor.
func (rt *root) unmount(v *vdom.VNode, parent *dom.Node, detach bool) {
	if v == nil {
		return
	}
	doc := rt.eng.doc

	switch v.Kind {
	case vdom.KindText:
		if n := v.LiveNode(); n != nil && detach {
			doc.RemoveChild(parent, n)
		}

	case vdom.KindElement:
		n := v.LiveNode()
		if n == nil {
			return
		}
		rt.clearProps(n, v.Props)
		for _, c := range v.Children {
			rt.unmount(c, n, false)
		}
		if detach {
			doc.RemoveChild(parent, n)
		}

	case vdom.KindFragment:
		for _, c := range v.Children {
			rt.unmount(c, parent, detach)
		}

	case vdom.KindPortal:
		// Portal children live in a foreign container and are always
		// physically removed from it.
		for _, c := range v.Children {
			rt.unmount(c, v.Container, true)
		}

	case vdom.KindComponent:
		inst, _ := v.Instance().(*Instance)
		if inst == nil {
			return
		}
		inst.prepareUnmount()
		rt.unmount(inst.rendered, parent, detach)
		inst.finishUnmount()
	}
}

// reconcileChildren runs the keyed child-list algorithm: a single greedy
// left-to-right pass with a last-seen-index watermark. A matched child
// whose original position regressed behind the watermark is physically
// moved after the previously placed sibling; unmatched new children are
// inserted at their position; leftover old children are unmounted. Greedy
// means O(n) and occasionally more moves than a minimal-edit diff would
// make; that trade-off is intentional.
func (rt *root) reconcileChildren(prev, next []*vdom.VNode, parent *dom.Node, owner *Instance) {
	if len(prev) == 0 && len(next) == 0 {
		return
	}

	type slot struct {
		node *vdom.VNode
		pos  int
	}
	existing := make(map[string]slot, len(prev))
	for i, c := range prev {
		existing[childKey(c, i)] = slot{node: c, pos: i}
	}

	lastIndex := 0
	var prevLive *dom.Node

	for i, child := range next {
		if child == nil {
			continue
		}
		k := childKey(child, i)
		s, found := existing[k]
		if found && vdom.SameIdentity(s.node, child) {
			delete(existing, k)
			rt.patch(s.node, child, parent, owner)
			if s.pos < lastIndex {
				rt.moveAfter(parent, child, prevLive)
			} else {
				lastIndex = s.pos
			}
		} else {
			// No reusable match at this key; a stale entry under the same
			// key is unmounted in the leftover pass.
			rt.mount(child, parent, refAfter(parent, prevLive), owner)
		}
		if n := lastLiveOf(child); n != nil {
			prevLive = n
		}
	}

	for i, c := range prev {
		if s, ok := existing[childKey(c, i)]; ok && s.node == c {
			rt.unmount(c, parent, true)
		}
	}
}

// childKey addresses a child for list reconciliation: the explicit key if
// present, otherwise the positional index.
func childKey(c *vdom.VNode, index int) string {
	if c != nil && c.Key != "" {
		return "k:" + c.Key
	}
	return "i:" + strconv.Itoa(index)
}

// moveAfter relocates child's live nodes to just after prevLive (to the
// front when prevLive is nil), preserving their internal order.
func (rt *root) moveAfter(parent *dom.Node, child *vdom.VNode, prevLive *dom.Node) {
	nodes := collectLive(child, nil)
	anchor := prevLive
	for _, n := range nodes {
		ref := refAfter(parent, anchor)
		if ref != n {
			rt.eng.doc.InsertBefore(parent, n, ref)
		}
		anchor = n
	}
}

// refAfter returns the live node immediately following prevLive among
// parent's children, or the first child when prevLive is nil. A nil
// result means "append".
func refAfter(parent, prevLive *dom.Node) *dom.Node {
	if parent == nil {
		return nil
	}
	if prevLive == nil {
		return parent.ChildAt(0)
	}
	for i := 0; i < parent.ChildCount(); i++ {
		if parent.ChildAt(i) == prevLive {
			return parent.ChildAt(i + 1)
		}
	}
	return nil
}

// insert attaches n under parent before ref. A nil parent leaves the node
// detached (used when building a replacement subtree).
func (rt *root) insert(parent, n, ref *dom.Node) {
	if parent == nil {
		return
	}
	if ref != nil {
		rt.eng.doc.InsertBefore(parent, n, ref)
		return
	}
	rt.eng.doc.AppendChild(parent, n)
}

// firstLive resolves the first render-target node a virtual subtree
// produced, descending through fragments and component output. Portals
// contribute nothing to their host position.
func firstLive(v *vdom.VNode) *dom.Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindElement, vdom.KindText:
		return v.LiveNode()
	case vdom.KindFragment:
		for _, c := range v.Children {
			if n := firstLive(c); n != nil {
				return n
			}
		}
	case vdom.KindComponent:
		if inst, ok := v.Instance().(*Instance); ok && inst != nil {
			return firstLive(inst.rendered)
		}
		return v.LiveNode()
	}
	return nil
}

// collectLive appends every top-level live node of the subtree to out.
func collectLive(v *vdom.VNode, out []*dom.Node) []*dom.Node {
	if v == nil {
		return out
	}
	switch v.Kind {
	case vdom.KindElement, vdom.KindText:
		if n := v.LiveNode(); n != nil {
			out = append(out, n)
		}
	case vdom.KindFragment:
		for _, c := range v.Children {
			out = collectLive(c, out)
		}
	case vdom.KindComponent:
		if inst, ok := v.Instance().(*Instance); ok && inst != nil {
			out = collectLive(inst.rendered, out)
		}
	}
	return out
}

// lastLiveOf returns the last top-level live node of a subtree, used to
// advance the placement anchor during child reconciliation.
func lastLiveOf(v *vdom.VNode) *dom.Node {
	nodes := collectLive(v, nil)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

// raise walks the boundary chain upward from the failing instance. The
// first ancestor whose component accepts the error is scheduled for a
// forced re-render (its fallback output replaces the region) and the walk
// stops. With no accepting ancestor the error goes to the sink and the
// caller degrades the failed position to a placeholder.
func (rt *root) raise(from *Instance, err error, phase string) bool {
	info := vdom.ErrorInfo{Component: from.Name(), Phase: phase}
	for b := from.parent; b != nil; b = b.parent {
		c, ok := b.catcher()
		if !ok {
			continue
		}
		if c.CatchError(err, info) {
			b.forced = true
			rt.eng.scheduler.Schedule(b)
			return true
		}
	}
	rt.eng.sink.Report("component", "Unhandled error reached tree root", map[string]any{
		"code":      "E302",
		"component": from.Name(),
		"phase":     phase,
		"error":     err.Error(),
	})
	return false
}

// placeholderNode is the inline diagnostic shown where a subtree failed
// to render.
func placeholderNode(name string, err error) *vdom.VNode {
	return vdom.New("pre", vdom.Props{"data-render-error": name}, err.Error())
}
