package runtime

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/events"
	"github.com/lumo-dev/lumo/pkg/hooks"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// applyProps diffs two prop maps onto a live element. Removed keys are
// cleared, changed keys rewritten. Event-prefixed keys go to the
// dispatcher instead of the attribute table, style maps are diffed per
// sub-property, booleans toggle attribute presence, and refs are updated
// last with detach-before-attach semantics.
func (rt *root) applyProps(n *dom.Node, prev, next vdom.Props) {
	for key, old := range prev {
		if key == "key" || key == "ref" {
			continue
		}
		if _, kept := next[key]; kept {
			continue
		}
		switch {
		case vdom.IsEventProp(key):
			rt.dispatcher.Deregister(n, key)
		case key == "style":
			for prop := range toStyleMap(old) {
				rt.eng.doc.SetStyle(n, prop, "")
			}
		default:
			rt.eng.doc.RemoveAttribute(n, key)
		}
	}

	for key, value := range next {
		if key == "key" || key == "ref" {
			continue
		}
		old := prev[key]
		switch {
		case vdom.IsEventProp(key):
			if !sameRef(old, value) {
				if h := toHandler(value); h != nil {
					rt.dispatcher.Register(n, key, h)
				} else {
					rt.dispatcher.Deregister(n, key)
				}
			}
		case key == "style":
			rt.applyStyle(n, toStyleMap(old), toStyleMap(value))
		default:
			rt.applyAttr(n, key, value)
		}
	}

	// Refs go last so a ref callback observes a fully configured node.
	oldRef, newRef := prev["ref"], next["ref"]
	if !sameRef(oldRef, newRef) {
		rt.deliverRef(n, oldRef, nil)
		rt.deliverRef(n, newRef, n)
	}
}

// clearProps tears down a node's prop bindings during unmount: handlers
// are deregistered in bulk and the ref, if any, is detached.
func (rt *root) clearProps(n *dom.Node, props vdom.Props) {
	rt.dispatcher.DeregisterAll(n)
	rt.deliverRef(n, props["ref"], nil)
}

// deliverRef applies a ref guarded: a panicking ref callback is
// reported and the rest of the node's application continues.
func (rt *root) deliverRef(n *dom.Node, ref any, target *dom.Node) {
	defer func() {
		if r := recover(); r != nil {
			rt.eng.sink.Report("render", "Ref callback panicked", map[string]any{
				"code":  "E101",
				"node":  n.NID(),
				"panic": r,
			})
		}
	}()
	applyRef(ref, target)
}

// applyAttr writes one generic attribute. Booleans toggle presence,
// strings are escaped against attribute injection, everything else is
// stringified first.
func (rt *root) applyAttr(n *dom.Node, key string, value any) {
	switch v := value.(type) {
	case nil:
		rt.eng.doc.RemoveAttribute(n, key)
	case bool:
		if v {
			rt.eng.doc.SetAttribute(n, key, "")
		} else {
			rt.eng.doc.RemoveAttribute(n, key)
		}
	case string:
		rt.eng.doc.SetAttribute(n, key, escapeAttr(v))
	default:
		rt.eng.doc.SetAttribute(n, key, escapeAttr(fmt.Sprintf("%v", v)))
	}
}

// applyStyle diffs style maps per sub-property. Unsafe values are
// rejected with a sink report instead of being written; rejection is
// non-fatal to the rest of the node.
func (rt *root) applyStyle(n *dom.Node, prev, next map[string]string) {
	for prop := range prev {
		if _, kept := next[prop]; !kept {
			rt.eng.doc.SetStyle(n, prop, "")
		}
	}
	for prop, value := range next {
		if prev[prop] == value {
			continue
		}
		if unsafeStyleValue(value) {
			rt.eng.sink.Report("validation", "Unsafe style value rejected", map[string]any{
				"code":     "E500",
				"node":     n.NID(),
				"property": prop,
			})
			continue
		}
		rt.eng.doc.SetStyle(n, prop, value)
	}
}

// toStyleMap normalizes the accepted style prop shapes to string values.
func toStyleMap(value any) map[string]string {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, sub := range v {
			out[k] = fmt.Sprintf("%v", sub)
		}
		return out
	case vdom.Props:
		out := make(map[string]string, len(v))
		for k, sub := range v {
			out[k] = fmt.Sprintf("%v", sub)
		}
		return out
	case string:
		// Raw style strings are split on ";" into property:value pairs.
		out := make(map[string]string)
		for _, decl := range strings.Split(v, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			prop, val = strings.TrimSpace(prop), strings.TrimSpace(val)
			if prop != "" && val != "" {
				out[prop] = val
			}
		}
		return out
	default:
		return nil
	}
}

// toHandler adapts the accepted handler prop shapes to events.Handler.
func toHandler(value any) events.Handler {
	switch h := value.(type) {
	case events.Handler:
		return h
	case func(*events.Event):
		return h
	case func():
		return func(*events.Event) { h() }
	default:
		return nil
	}
}

// applyRef delivers a node to a ref prop: a callback is invoked, a cell
// is assigned. A nil node signals detach.
func applyRef(ref any, n *dom.Node) {
	switch r := ref.(type) {
	case nil:
	case func(*dom.Node):
		r(n)
	case *hooks.RefCell[*dom.Node]:
		r.Current = n
	}
}

// sameRef reports identity equality between two prop values: pointer
// equality for funcs, pointers, maps, slices, and channels, == for
// comparable values.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan:
		return ra.Pointer() == rb.Pointer()
	default:
		if ra.Comparable() {
			return a == b
		}
		return false
	}
}

// unsafeStyleValue rejects style payloads that can smuggle script.
func unsafeStyleValue(v string) bool {
	lower := strings.ToLower(v)
	return strings.Contains(lower, "javascript:") ||
		strings.Contains(lower, "vbscript:") ||
		strings.Contains(lower, "expression(")
}

// escapeAttr escapes attribute-breaking characters in untrusted values.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
