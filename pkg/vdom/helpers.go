package vdom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// element is the shared constructor behind the tag helpers.
func element(tag string, props Props, children ...any) *VNode {
	return New(tag, props, children...)
}

// Div creates a <div> element.
func Div(props Props, children ...any) *VNode { return element("div", props, children...) }

// Span creates a <span> element.
func Span(props Props, children ...any) *VNode { return element("span", props, children...) }

// P creates a <p> element.
func P(props Props, children ...any) *VNode { return element("p", props, children...) }

// H1 creates an <h1> element.
func H1(props Props, children ...any) *VNode { return element("h1", props, children...) }

// Button creates a <button> element.
func Button(props Props, children ...any) *VNode { return element("button", props, children...) }

// Ul creates a <ul> element.
func Ul(props Props, children ...any) *VNode { return element("ul", props, children...) }

// Li creates an <li> element.
func Li(props Props, children ...any) *VNode { return element("li", props, children...) }

// Input creates an <input> element.
func Input(props Props) *VNode { return element("input", props) }

// Label creates a <label> element.
func Label(props Props, children ...any) *VNode { return element("label", props, children...) }

// Form creates a <form> element.
func Form(props Props, children ...any) *VNode { return element("form", props, children...) }

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation. The function is only called
// if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Keyed returns a copy of props with the reconciliation key set. The key
// is converted to a string with fmt.Sprintf.
func Keyed(key any, props Props) Props {
	out := make(Props, len(props)+1)
	for k, v := range props {
		out[k] = v
	}
	out["key"] = fmt.Sprintf("%v", key)
	return out
}
