package runtime_test

import (
	"testing"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/vdom"
	"github.com/lumo-dev/lumo/pkg/vtest"
)

// list builds a <ul> whose items carry their key as text.
func list(keys ...string) *vdom.VNode {
	items := vdom.Range(keys, func(k string, _ int) *vdom.VNode {
		return vdom.Li(vdom.Keyed(k, nil), k)
	})
	return vdom.Ul(nil, items)
}

// itemTexts reads the text of each list item under ul.
func itemTexts(ul *dom.Node) []string {
	out := make([]string, 0, ul.ChildCount())
	for _, li := range ul.Children() {
		out = append(out, li.ChildAt(0).Text())
	}
	return out
}

func assertOrder(t *testing.T, ul *dom.Node, want ...string) {
	t.Helper()
	got := itemTexts(ul)
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items = %v, want %v", got, want)
		}
	}
}

func TestKeyedReorderMovesWithoutRemount(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(list("a", "b", "c"))
	before := ul.Children()

	h.ResetMutations()
	h.Render(list("c", "a", "b"))

	if got := h.MutationCount(dom.OpCreateNode); got != 0 {
		t.Errorf("CreateNode = %d, want 0 (reorder must not recreate)", got)
	}
	if got := h.MutationCount(dom.OpRemoveChild); got != 0 {
		t.Errorf("RemoveChild = %d, want 0 (reorder must not unmount)", got)
	}
	moves := h.MutationCount(dom.OpInsertBefore) + h.MutationCount(dom.OpAppendChild)
	if moves == 0 {
		t.Error("reorder must produce move operations")
	}
	assertOrder(t, ul, "c", "a", "b")

	// The same live nodes, just repositioned.
	after := ul.Children()
	if after[0] != before[2] || after[1] != before[0] || after[2] != before[1] {
		t.Error("reorder must move the existing live nodes")
	}
}

func TestKeyedInsertionInMiddle(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(list("a", "c"))
	liA, liC := ul.ChildAt(0), ul.ChildAt(1)

	h.ResetMutations()
	h.Render(list("a", "b", "c"))

	// One li plus its text node.
	if got := h.MutationCount(dom.OpCreateNode); got != 2 {
		t.Errorf("CreateNode = %d, want 2", got)
	}
	if h.MutationCount(dom.OpRemoveChild) != 0 {
		t.Error("insertion must not remove siblings")
	}
	assertOrder(t, ul, "a", "b", "c")
	if ul.ChildAt(0) != liA || ul.ChildAt(2) != liC {
		t.Error("existing items must keep their live nodes")
	}
}

func TestKeyedRemoval(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(list("a", "b", "c"))
	liB := ul.ChildAt(1)

	h.ResetMutations()
	h.Render(list("a", "c"))

	if got := h.MutationCount(dom.OpRemoveChild); got != 1 {
		t.Errorf("RemoveChild = %d, want 1", got)
	}
	if h.MutationCount(dom.OpCreateNode) != 0 {
		t.Error("removal must not recreate surviving items")
	}
	assertOrder(t, ul, "a", "c")
	if liB.Parent() != nil {
		t.Error("removed item must be detached")
	}
}

func TestDisjointKeySetsRemountAll(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(list("a", "b"))

	h.ResetMutations()
	h.Render(list("x", "y"))

	// Two new lis with their text nodes; both old lis removed.
	if got := h.MutationCount(dom.OpCreateNode); got != 4 {
		t.Errorf("CreateNode = %d, want 4", got)
	}
	if got := h.MutationCount(dom.OpRemoveChild); got != 2 {
		t.Errorf("RemoveChild = %d, want 2", got)
	}
	assertOrder(t, ul, "x", "y")
}

func TestUnkeyedChildrenPatchPositionally(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(vdom.Ul(nil, vdom.Li(nil, "a"), vdom.Li(nil, "b")))
	liA := ul.ChildAt(0)

	h.ResetMutations()
	h.Render(vdom.Ul(nil, vdom.Li(nil, "x"), vdom.Li(nil, "b")))

	if got := h.MutationCount(dom.OpSetText); got != 1 {
		t.Errorf("SetText = %d, want 1", got)
	}
	if h.MutationCount(dom.OpCreateNode) != 0 {
		t.Error("positional match must reuse nodes")
	}
	if ul.ChildAt(0) != liA {
		t.Error("first item must keep its live node")
	}
}

func TestListGrowsAndShrinks(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(list())

	h.Render(list("a", "b", "c", "d"))
	assertOrder(t, ul, "a", "b", "c", "d")

	h.Render(list("b", "d"))
	assertOrder(t, ul, "b", "d")

	h.Render(list())
	if ul.ChildCount() != 0 {
		t.Errorf("ChildCount = %d, want 0", ul.ChildCount())
	}
}

func TestFragmentChildrenShareParent(t *testing.T) {
	h := vtest.New(t)
	h.Render(vdom.Div(nil,
		vdom.Span(nil, "before"),
		vdom.Fragment(vdom.Span(nil, "f1"), vdom.Span(nil, "f2")),
		vdom.Span(nil, "after"),
	))

	div := h.Container.ChildAt(0)
	if div.ChildCount() != 4 {
		t.Fatalf("ChildCount = %d, want 4 (fragment flattens)", div.ChildCount())
	}
	if div.ChildAt(1).ChildAt(0).Text() != "f1" || div.ChildAt(2).ChildAt(0).Text() != "f2" {
		t.Error("fragment children must mount in place")
	}

	h.ResetMutations()
	h.Render(vdom.Div(nil,
		vdom.Span(nil, "before"),
		vdom.Fragment(vdom.Span(nil, "f1!"), vdom.Span(nil, "f2")),
		vdom.Span(nil, "after"),
	))
	if got := h.MutationCount(dom.OpSetText); got != 1 {
		t.Errorf("SetText = %d, want 1 (fragment children patch in place)", got)
	}
}

func TestReplaceWithinList(t *testing.T) {
	h := vtest.New(t)
	ul := h.Render(vdom.Ul(nil,
		vdom.Li(vdom.Keyed("a", nil), "a"),
		vdom.Li(vdom.Keyed("b", nil), "b"),
	))

	h.ResetMutations()
	// Same key, different tag: identity differs, so the node is replaced.
	h.Render(vdom.Ul(nil,
		vdom.New("p", vdom.Keyed("a", nil), "a"),
		vdom.Li(vdom.Keyed("b", nil), "b"),
	))

	if ul.ChildAt(0).Tag() != "p" {
		t.Errorf("first item tag = %q, want p", ul.ChildAt(0).Tag())
	}
	if ul.ChildAt(1).Tag() != "li" {
		t.Error("the untouched sibling must survive")
	}
}
