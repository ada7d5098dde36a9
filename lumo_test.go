package lumo

import (
	"testing"

	"github.com/lumo-dev/lumo/pkg/hooks"
)

func TestCreateElementAndSerialize(t *testing.T) {
	v := CreateElement("div", Props{"class": "app"},
		Text("hi "),
		CreateElement("b", nil, "there"),
	)
	got := RenderToText(v)
	want := `<div class="app">hi <b>there</b></div>`
	if got != want {
		t.Errorf("RenderToText = %q, want %q", got, want)
	}
}

func TestEngineRoundTrip(t *testing.T) {
	eng := New(Config{})
	container := eng.Document().CreateContainer("app")
	root := eng.CreateRoot(container)

	greet := Func("Greet", func(c *hooks.Ctx, props Props) *Node {
		return CreateElement("h1", nil, props["name"])
	})

	live, err := root.Render(CreateElement(greet, Props{"name": "lumo"}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if live.Tag() != "h1" || live.ChildAt(0).Text() != "lumo" {
		t.Errorf("live = %v, want h1>lumo", live)
	}
	if !root.Unmount() {
		t.Error("Unmount should tear down the tree")
	}
}

func TestFragmentGroups(t *testing.T) {
	got := RenderToText(Fragment(Text("a"), Text("b")))
	if got != "ab" {
		t.Errorf("RenderToText = %q, want ab", got)
	}
}
