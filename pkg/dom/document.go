package dom

import (
	"fmt"
	"strings"
)

// Document is the in-memory render target. All node creation and mutation
// goes through Document methods; direct field access is not possible from
// outside the package, which keeps the observer stream complete.
//
// A Document is single-threaded by design: the engine drives it from one
// cooperative event loop and never mutates it concurrently.
type Document struct {
	nidCounter uint64
	containers map[string]*Node
	byNID      map[string]*Node
	observers  []Observer
	listeners  map[*Node]map[string][]func(*NativeEvent)
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		containers: make(map[string]*Node),
		byNID:      make(map[string]*Node),
		listeners:  make(map[*Node]map[string][]func(*NativeEvent)),
	}
}

// Observe registers an observer for all subsequent mutations.
func (d *Document) Observe(fn Observer) {
	d.observers = append(d.observers, fn)
}

// notify reports a mutation to all observers.
func (d *Document) notify(m Mutation) {
	for _, fn := range d.observers {
		fn(m)
	}
}

// nextNID generates the next sequential node ID.
func (d *Document) nextNID() string {
	d.nidCounter++
	return fmt.Sprintf("n%d", d.nidCounter)
}

// CreateNode creates a detached node. When isText is true, tagOrText is
// the text payload; otherwise it is the element tag name.
func (d *Document) CreateNode(tagOrText string, isText bool) *Node {
	n := &Node{nid: d.nextNID()}
	if isText {
		n.kind = TextNode
		n.text = tagOrText
	} else {
		n.kind = ElementNode
		n.tag = strings.ToLower(tagOrText)
	}
	d.byNID[n.nid] = n
	d.notify(Mutation{Op: OpCreateNode, Node: n})
	return n
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) *Node {
	n := &Node{kind: CommentNode, nid: d.nextNID(), text: text}
	d.byNID[n.nid] = n
	d.notify(Mutation{Op: OpCreateNode, Node: n})
	return n
}

// SetText updates the payload of a text or comment node.
func (d *Document) SetText(n *Node, text string) {
	if n == nil || n.kind == ElementNode {
		return
	}
	if n.text == text {
		return
	}
	n.text = text
	d.notify(Mutation{Op: OpSetText, Node: n, Value: text})
}

// SetAttribute sets an attribute on an element node.
func (d *Document) SetAttribute(n *Node, key, value string) {
	if n == nil || n.kind != ElementNode {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if cur, ok := n.attrs[key]; ok && cur == value {
		return
	}
	n.attrs[key] = value
	d.notify(Mutation{Op: OpSetAttr, Node: n, Key: key, Value: value})
}

// RemoveAttribute removes an attribute from an element node.
func (d *Document) RemoveAttribute(n *Node, key string) {
	if n == nil || n.attrs == nil {
		return
	}
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	d.notify(Mutation{Op: OpRemoveAttr, Node: n, Key: key})
}

// SetStyle sets a style property on an element node. An empty value
// removes the property.
func (d *Document) SetStyle(n *Node, prop, value string) {
	if n == nil || n.kind != ElementNode {
		return
	}
	if value == "" {
		if _, ok := n.styles[prop]; !ok {
			return
		}
		delete(n.styles, prop)
		d.notify(Mutation{Op: OpRemoveStyle, Node: n, Key: prop})
		return
	}
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	if cur, ok := n.styles[prop]; ok && cur == value {
		return
	}
	n.styles[prop] = value
	d.notify(Mutation{Op: OpSetStyle, Node: n, Key: prop, Value: value})
}

// AppendChild appends child to parent, detaching it from any previous
// parent first.
func (d *Document) AppendChild(parent, child *Node) {
	if parent == nil || child == nil || child.contains(parent) {
		return
	}
	d.detach(child)
	child.parent = parent
	parent.children = append(parent.children, child)
	d.notify(Mutation{Op: OpAppendChild, Node: child, Parent: parent})
}

// InsertBefore inserts child into parent before ref. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *Node) {
	if parent == nil || child == nil || child.contains(parent) {
		return
	}
	if ref == nil {
		d.AppendChild(parent, child)
		return
	}
	idx := parent.indexOf(ref)
	if idx < 0 {
		d.AppendChild(parent, child)
		return
	}
	d.detach(child)
	child.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = child
	d.notify(Mutation{Op: OpInsertBefore, Node: child, Parent: parent, Ref: ref})
}

// ReplaceChild replaces oldChild with newChild in parent.
func (d *Document) ReplaceChild(parent, newChild, oldChild *Node) {
	if parent == nil || newChild == nil || oldChild == nil {
		return
	}
	idx := parent.indexOf(oldChild)
	if idx < 0 {
		return
	}
	d.detach(newChild)
	oldChild.parent = nil
	newChild.parent = parent
	parent.children[idx] = newChild
	d.notify(Mutation{Op: OpReplaceChild, Node: newChild, Parent: parent, Ref: oldChild})
}

// RemoveChild removes child from parent.
func (d *Document) RemoveChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	idx := parent.indexOf(child)
	if idx < 0 {
		return
	}
	child.parent = nil
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	d.notify(Mutation{Op: OpRemoveChild, Node: child, Parent: parent})
}

// Parent returns the parent of n.
func (d *Document) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// detach silently removes a node from its current parent. Used when a
// node is re-homed by an insert; the insert mutation carries the intent.
func (d *Document) detach(n *Node) {
	p := n.parent
	if p == nil {
		return
	}
	if idx := p.indexOf(n); idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	n.parent = nil
}

// CreateContainer registers a root container under the given identifier
// and returns it. Registering an existing identifier returns the existing
// container.
func (d *Document) CreateContainer(id string) *Node {
	if c, ok := d.containers[id]; ok {
		return c
	}
	c := d.CreateNode("div", false)
	d.SetAttribute(c, "id", id)
	d.containers[id] = c
	return c
}

// Container resolves a registered root container by identifier.
func (d *Document) Container(id string) *Node {
	return d.containers[id]
}

// ClearContainer removes all children of the container.
func (d *Document) ClearContainer(c *Node) {
	if c == nil || len(c.children) == 0 {
		return
	}
	for _, child := range c.children {
		child.parent = nil
	}
	c.children = nil
	d.notify(Mutation{Op: OpClearContainer, Node: c})
}

// NodeByNID resolves a node by its stable identifier. Used by remote
// transports that address nodes by ID.
func (d *Document) NodeByNID(nid string) *Node {
	return d.byNID[nid]
}
