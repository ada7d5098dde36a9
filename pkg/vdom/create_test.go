package vdom

import (
	"testing"

	"github.com/lumo-dev/lumo/pkg/hooks"
)

func TestNewElement(t *testing.T) {
	n := New("div", Props{"class": "box"}, Text("hi"))

	if n.Kind != KindElement {
		t.Errorf("Kind = %v, want Element", n.Kind)
	}
	if n.Tag != "div" {
		t.Errorf("Tag = %q, want div", n.Tag)
	}
	if len(n.Children) != 1 || n.Children[0].Kind != KindText {
		t.Fatalf("Children = %v, want one text child", n.Children)
	}
}

func TestNewComponent(t *testing.T) {
	ref := Func("Hello", func(c *hooks.Ctx, props Props) *VNode {
		return Text("hello")
	})
	n := New(ref, Props{"key": "x"})

	if n.Kind != KindComponent {
		t.Errorf("Kind = %v, want Component", n.Kind)
	}
	if n.Comp != ref {
		t.Error("Comp should be the registered ref")
	}
	if n.Key != "x" {
		t.Errorf("Key = %q, want x", n.Key)
	}
	if ref.Kind() != Functional || ref.Name() != "Hello" {
		t.Errorf("ref = %s/%s, want Functional/Hello", ref.Kind(), ref.Name())
	}
}

func TestNewInvalidTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid node type")
		}
	}()
	New(42, nil)
}

func TestKeyExtraction(t *testing.T) {
	tests := []struct {
		name string
		prop any
		want string
	}{
		{"string key", "a", "a"},
		{"int key", 7, "7"},
		{"nil key", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New("li", Props{"key": tt.prop})
			if n.Key != tt.want {
				t.Errorf("Key = %q, want %q", n.Key, tt.want)
			}
		})
	}
}

func TestNormalizeFlattensAndDrops(t *testing.T) {
	kids := []any{
		Text("a"),
		nil,
		[]any{Text("b"), nil, []any{Text("c")}},
		"raw",
		42,
		true,
	}
	n := New("div", nil, kids...)

	want := []string{"a", "b", "c", "raw", "42", "true"}
	if len(n.Children) != len(want) {
		t.Fatalf("got %d children, want %d", len(n.Children), len(want))
	}
	for i, w := range want {
		if n.Children[i].Kind != KindText || n.Children[i].Text != w {
			t.Errorf("child %d = %+v, want text %q", i, n.Children[i], w)
		}
	}
}

func TestNormalizeVNodeSlice(t *testing.T) {
	items := []*VNode{Text("x"), nil, Text("y")}
	n := New("ul", nil, items)
	if len(n.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(n.Children))
	}
}

func TestFragmentAndPortal(t *testing.T) {
	f := Fragment(Text("a"), Text("b"))
	if f.Kind != KindFragment || len(f.Children) != 2 {
		t.Errorf("Fragment = %+v, want 2 children", f)
	}

	p := Portal(nil, Text("a"))
	if p.Kind != KindPortal {
		t.Errorf("Kind = %v, want Portal", p.Kind)
	}
}

func TestTextf(t *testing.T) {
	n := Textf("count: %d", 3)
	if n.Text != "count: 3" {
		t.Errorf("Text = %q, want %q", n.Text, "count: 3")
	}
}
