// Package render serializes virtual trees to markup text. It never
// touches a render target: components are evaluated transiently, effects
// are discarded, and the output is a pure function of the input tree.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumo-dev/lumo/pkg/hooks"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// ToText serializes v to markup. Fragments are inlined, portals produce
// no output at their host position, void elements self-close, and text
// and attribute values are escaped.
func ToText(v *vdom.VNode) string {
	var b strings.Builder
	writeNode(&b, v)
	return b.String()
}

func writeNode(b *strings.Builder, v *vdom.VNode) {
	if v == nil {
		return
	}
	switch v.Kind {
	case vdom.KindText:
		b.WriteString(escapeText(v.Text))

	case vdom.KindElement:
		writeElement(b, v)

	case vdom.KindFragment:
		for _, c := range v.Children {
			writeNode(b, c)
		}

	case vdom.KindPortal:
		// Portal content belongs to a foreign container, which has no
		// place in this serialization.

	case vdom.KindComponent:
		writeNode(b, evaluate(v))
	}
}

func writeElement(b *strings.Builder, v *vdom.VNode) {
	b.WriteByte('<')
	b.WriteString(v.Tag)
	writeAttrs(b, v.Props)

	if vdom.IsVoidElement(v.Tag) {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	for _, c := range v.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(v.Tag)
	b.WriteByte('>')
}

// writeAttrs serializes props in sorted key order so output is stable.
// Event handlers, refs, and keys have no textual form.
func writeAttrs(b *strings.Builder, props vdom.Props) {
	if len(props) == 0 {
		return
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "key" || k == "ref" || vdom.IsEventProp(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch val := props[k].(type) {
		case nil:
		case bool:
			if val {
				b.WriteByte(' ')
				b.WriteString(k)
			}
		case string:
			writeAttr(b, k, val)
		case map[string]string:
			if k == "style" {
				writeAttr(b, k, styleText(val))
			} else {
				writeAttr(b, k, fmt.Sprintf("%v", val))
			}
		case map[string]any:
			if k == "style" {
				writeAttr(b, k, styleTextAny(val))
			} else {
				writeAttr(b, k, fmt.Sprintf("%v", val))
			}
		default:
			writeAttr(b, k, fmt.Sprintf("%v", val))
		}
	}
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(escapeAttr(value))
	b.WriteByte('"')
}

// styleText flattens a style map to "prop:value" declarations in sorted
// property order.
func styleText(styles map[string]string) string {
	props := make([]string, 0, len(styles))
	for p := range styles {
		props = append(props, p)
	}
	sort.Strings(props)

	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p)
		b.WriteByte(':')
		b.WriteString(styles[p])
	}
	return b.String()
}

func styleTextAny(styles map[string]any) string {
	out := make(map[string]string, len(styles))
	for p, v := range styles {
		out[p] = fmt.Sprintf("%v", v)
	}
	return styleText(out)
}

// evaluate renders a component once with a throwaway hook store. State
// hooks see their initial values; effects are queued against a no-op
// owner and never run.
func evaluate(v *vdom.VNode) *vdom.VNode {
	if v.Comp == nil {
		return nil
	}
	switch v.Comp.Kind() {
	case vdom.Stateful:
		sc := v.Comp.Construct()
		if sc == nil {
			return nil
		}
		var state vdom.State
		if init, ok := sc.(vdom.Initializer); ok {
			state = init.InitialState()
		}
		return sc.Render(v.Props, state)
	default:
		ctx := hooks.Begin(hooks.NewStore(), hooks.NopOwner{}, false)
		out := v.Comp.RenderFunc()(ctx, v.Props)
		ctx.End()
		return out
	}
}

func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
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
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

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
