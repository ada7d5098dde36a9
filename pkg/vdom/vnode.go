package vdom

import (
	"strings"

	"github.com/lumo-dev/lumo/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // plain text node
	KindFragment               // grouping without wrapper
	KindPortal                 // children rendered into a foreign container
	KindComponent              // component reference
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindPortal:
		return "Portal"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a virtual tree node. A VNode is immutable once constructed:
// reconciliation reads old trees, it never reshapes them. The only fields
// written after construction are the unexported runtime bindings below.
type VNode struct {
	Kind      VKind     // node type
	Tag       string    // element tag name (e.g., "div")
	Props     Props     // attributes, event handlers, style
	Children  []*VNode  // normalized child nodes
	Key       string    // reconciliation key; "" = positional fallback
	Text      string    // for KindText
	Container *dom.Node // for KindPortal: the foreign render target
	Comp      *ComponentRef

	// Runtime bindings, assigned during mount/patch by the runtime
	// package. They are bookkeeping, not part of structural identity.
	live *dom.Node
	inst any
}

// Props holds attributes, event handlers, and style values.
type Props map[string]any

// LiveNode returns the render-target node this virtual node most recently
// produced, or nil before mount.
func (v *VNode) LiveNode() *dom.Node { return v.live }

// BindLive records the render-target node for this virtual node.
// Called by the runtime during mount and patch.
func (v *VNode) BindLive(n *dom.Node) { v.live = n }

// Instance returns the component instance bound to this node, or nil.
func (v *VNode) Instance() any { return v.inst }

// BindInstance records the component instance for this node.
// Called by the runtime when a component node is mounted or reused.
func (v *VNode) BindInstance(inst any) { v.inst = inst }

// SameIdentity reports whether two nodes at the same tree position
// describe the "same" logical node for reconciliation: kind, type, and
// key must all match. Two nodes with empty keys still match by this rule,
// which is a deliberate positional fallback.
func SameIdentity(prev, next *VNode) bool {
	if prev == nil || next == nil {
		return prev == next
	}
	if prev.Kind != next.Kind || prev.Key != next.Key {
		return false
	}
	switch prev.Kind {
	case KindElement:
		return prev.Tag == next.Tag
	case KindComponent:
		return prev.Comp == next.Comp
	default:
		return true
	}
}

// IsEventProp returns true if the prop key names an event handler
// ("onClick", "onInputCapture", ...). Case-insensitive on the prefix to
// catch onclick, OnClick, etc.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
