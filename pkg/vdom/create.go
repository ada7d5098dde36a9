package vdom

import (
	"fmt"

	"github.com/lumo-dev/lumo/internal/errors"
	"github.com/lumo-dev/lumo/pkg/dom"
)

// New constructs a VNode from a type, a props mapping, and children.
// typ is an element tag (string) or a *ComponentRef. Children are
// normalized: nested slices are flattened, nils dropped, and non-node
// values (strings, numbers) wrapped into text nodes. The reconciliation
// key is read from props["key"].
func New(typ any, props Props, children ...any) *VNode {
	node := &VNode{Props: props}

	switch t := typ.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case *ComponentRef:
		node.Kind = KindComponent
		node.Comp = t
	default:
		panic(errors.New("E501").
			With("detail", fmt.Sprintf("invalid node type %T", typ)))
	}

	node.Key = extractKey(props)
	node.Children = normalize(children)
	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{Kind: KindFragment, Children: normalize(children)}
}

// Portal renders children into a foreign container instead of the
// position the node occupies in the tree.
func Portal(container *dom.Node, children ...any) *VNode {
	return &VNode{
		Kind:      KindPortal,
		Container: container,
		Children:  normalize(children),
	}
}

// extractKey reads the reconciliation key from props.
func extractKey(props Props) string {
	if props == nil {
		return ""
	}
	switch k := props["key"].(type) {
	case nil:
		return ""
	case string:
		return k
	default:
		return fmt.Sprintf("%v", k)
	}
}

// normalize flattens nested child lists, drops nils, and wraps non-node
// children into text nodes.
func normalize(children []any) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(children))
	appendChildren(&out, children)
	return out
}

func appendChildren(out *[]*VNode, children []any) {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				*out = append(*out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					*out = append(*out, c)
				}
			}
		case []any:
			appendChildren(out, v)
		case string:
			*out = append(*out, Text(v))
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, bool:
			*out = append(*out, Text(fmt.Sprintf("%v", v)))
		default:
			// Anything else renders as its string form rather than
			// being silently dropped.
			*out = append(*out, Text(fmt.Sprintf("%v", v)))
		}
	}
}
