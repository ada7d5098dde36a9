// Package lumo is the public surface of the Lumo UI-tree reconciliation
// engine. It re-exports tree construction, engine setup, and the text
// serializer so most applications only import this package plus the hook
// functions from pkg/hooks.
package lumo

import (
	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/render"
	"github.com/lumo-dev/lumo/pkg/runtime"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// Core aliases so application code reads without package stutter.
type (
	// Node is a virtual tree node.
	Node = vdom.VNode

	// Props holds attributes, event handlers, and style values.
	Props = vdom.Props

	// State is a stateful component's local state map.
	State = vdom.State

	// Engine drives rendering into a document.
	Engine = runtime.Engine

	// Config configures an Engine.
	Config = runtime.Config

	// Root binds an engine to one container.
	Root = runtime.Root
)

// CreateElement builds a virtual node from a tag or component reference,
// props, and children.
func CreateElement(typ any, props Props, children ...any) *Node {
	return vdom.New(typ, props, children...)
}

// Text builds a text node.
func Text(content string) *Node { return vdom.Text(content) }

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node { return vdom.Fragment(children...) }

// CreatePortal renders children into a foreign container instead of the
// position the node occupies in its tree.
func CreatePortal(container *dom.Node, children ...any) *Node {
	return vdom.Portal(container, children...)
}

// Func registers a functional component.
func Func(name string, fn vdom.RenderFunc) *vdom.ComponentRef {
	return vdom.Func(name, fn)
}

// Class registers a stateful component.
func Class(name string, factory func() vdom.StatefulComponent) *vdom.ComponentRef {
	return vdom.Class(name, factory)
}

// New creates an engine.
func New(cfg Config) *Engine { return runtime.New(cfg) }

// RenderToText serializes a virtual tree to markup without touching any
// render target.
func RenderToText(v *Node) string { return render.ToText(v) }
