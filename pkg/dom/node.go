package dom

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	ElementNode NodeKind = iota // tagged element
	TextNode                    // plain text node
	CommentNode                 // comment/marker node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is a live node in the document. Nodes are created and mutated only
// through their owning Document so that every change is observable.
type Node struct {
	kind     NodeKind
	nid      string // stable node id, assigned at creation
	tag      string // element tag name (e.g., "div")
	text     string // text/comment payload
	attrs    map[string]string
	styles   map[string]string
	parent   *Node
	children []*Node
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// NID returns the stable node identifier assigned at creation.
func (n *Node) NID() string { return n.nid }

// Tag returns the element tag name. Empty for non-element nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text payload of a text or comment node.
func (n *Node) Text() string { return n.text }

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// AttrCount returns the number of attributes set on the node.
func (n *Node) AttrCount() int { return len(n.attrs) }

// Style returns the style property value and whether it is set.
func (n *Node) Style(prop string) (string, bool) {
	v, ok := n.styles[prop]
	return v, ok
}

// StyleCount returns the number of style properties set on the node.
func (n *Node) StyleCount() int { return len(n.styles) }

// Parent returns the node's parent, or nil for detached nodes and roots.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// indexOf returns the position of child in n's child list, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	return n.contains(other)
}

// contains reports whether other is n or a descendant of n.
func (n *Node) contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}
