package dom

import "testing"

func TestCreateNodeAssignsSequentialNIDs(t *testing.T) {
	d := NewDocument()
	a := d.CreateNode("div", false)
	b := d.CreateNode("hello", true)

	if a.NID() != "n1" || b.NID() != "n2" {
		t.Errorf("NIDs = %q/%q, want n1/n2", a.NID(), b.NID())
	}
	if a.Kind() != ElementNode || a.Tag() != "div" {
		t.Errorf("a = %v %q, want Element div", a.Kind(), a.Tag())
	}
	if b.Kind() != TextNode || b.Text() != "hello" {
		t.Errorf("b = %v %q, want Text hello", b.Kind(), b.Text())
	}
	if d.NodeByNID("n2") != b {
		t.Error("NodeByNID should resolve created nodes")
	}
}

func TestCreateComment(t *testing.T) {
	d := NewDocument()
	c := d.CreateComment("marker")

	if c.Kind() != CommentNode || c.Text() != "marker" {
		t.Errorf("c = %v %q, want Comment marker", c.Kind(), c.Text())
	}
	if c.NID() != "n1" {
		t.Errorf("NID = %q, want n1", c.NID())
	}

	d.SetText(c, "moved")
	if c.Text() != "moved" {
		t.Errorf("Text = %q, want moved", c.Text())
	}
}

func TestCreateNodeLowercasesTag(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("DIV", false)
	if n.Tag() != "div" {
		t.Errorf("Tag = %q, want div", n.Tag())
	}
}

func TestSetTextDedupes(t *testing.T) {
	d := NewDocument()
	rec := &Recorder{}
	n := d.CreateNode("x", true)
	d.Observe(rec.Observe)

	d.SetText(n, "y")
	d.SetText(n, "y")
	if rec.Count(OpSetText) != 1 {
		t.Errorf("SetText mutations = %d, want 1", rec.Count(OpSetText))
	}
	if n.Text() != "y" {
		t.Errorf("Text = %q, want y", n.Text())
	}

	el := d.CreateNode("div", false)
	d.SetText(el, "nope")
	if rec.Count(OpSetText) != 1 {
		t.Error("SetText on element must be ignored")
	}
}

func TestAttributesAndStyles(t *testing.T) {
	d := NewDocument()
	rec := &Recorder{}
	n := d.CreateNode("div", false)
	d.Observe(rec.Observe)

	d.SetAttribute(n, "class", "a")
	d.SetAttribute(n, "class", "a") // dedupe
	d.SetAttribute(n, "class", "b")
	if got := rec.Count(OpSetAttr); got != 2 {
		t.Errorf("SetAttr mutations = %d, want 2", got)
	}
	if v, _ := n.Attr("class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}

	d.RemoveAttribute(n, "class")
	d.RemoveAttribute(n, "class") // absent, no-op
	if got := rec.Count(OpRemoveAttr); got != 1 {
		t.Errorf("RemoveAttr mutations = %d, want 1", got)
	}

	d.SetStyle(n, "color", "red")
	d.SetStyle(n, "color", "red") // dedupe
	if got := rec.Count(OpSetStyle); got != 1 {
		t.Errorf("SetStyle mutations = %d, want 1", got)
	}
	d.SetStyle(n, "color", "") // empty removes
	if got := rec.Count(OpRemoveStyle); got != 1 {
		t.Errorf("RemoveStyle mutations = %d, want 1", got)
	}
	if n.StyleCount() != 0 {
		t.Errorf("StyleCount = %d, want 0", n.StyleCount())
	}
}

func TestTreeOperations(t *testing.T) {
	d := NewDocument()
	parent := d.CreateNode("ul", false)
	a := d.CreateNode("li", false)
	b := d.CreateNode("li", false)
	c := d.CreateNode("li", false)

	d.AppendChild(parent, a)
	d.AppendChild(parent, c)
	d.InsertBefore(parent, b, c)

	if parent.ChildCount() != 3 {
		t.Fatalf("ChildCount = %d, want 3", parent.ChildCount())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children out of order after InsertBefore")
	}
	if b.Parent() != parent {
		t.Error("insert must set parent")
	}

	// Re-homing: an insert detaches from the previous parent first.
	other := d.CreateNode("ol", false)
	d.AppendChild(other, b)
	if parent.ChildCount() != 2 || other.ChildCount() != 1 {
		t.Errorf("counts = %d/%d after re-home, want 2/1",
			parent.ChildCount(), other.ChildCount())
	}

	repl := d.CreateNode("li", false)
	d.ReplaceChild(parent, repl, c)
	if parent.ChildAt(1) != repl || c.Parent() != nil {
		t.Error("ReplaceChild must swap in place and detach the old child")
	}

	d.RemoveChild(parent, a)
	if parent.ChildCount() != 1 || a.Parent() != nil {
		t.Error("RemoveChild must detach")
	}
}

func TestInsertBeforeNilRefAppends(t *testing.T) {
	d := NewDocument()
	parent := d.CreateNode("div", false)
	a := d.CreateNode("span", false)
	d.InsertBefore(parent, a, nil)
	if parent.ChildAt(0) != a {
		t.Error("nil ref should append")
	}
}

func TestCycleGuard(t *testing.T) {
	d := NewDocument()
	outer := d.CreateNode("div", false)
	inner := d.CreateNode("div", false)
	d.AppendChild(outer, inner)

	d.AppendChild(inner, outer) // would create a cycle
	if inner.ChildCount() != 0 {
		t.Error("appending an ancestor under its descendant must be refused")
	}
}

func TestContainers(t *testing.T) {
	d := NewDocument()
	c := d.CreateContainer("app")
	if d.CreateContainer("app") != c {
		t.Error("CreateContainer must be idempotent per id")
	}
	if d.Container("app") != c {
		t.Error("Container should resolve registered roots")
	}
	if d.Container("missing") != nil {
		t.Error("unknown container should be nil")
	}
	if id, _ := c.Attr("id"); id != "app" {
		t.Errorf("id attr = %q, want app", id)
	}

	rec := &Recorder{}
	d.Observe(rec.Observe)
	kid := d.CreateNode("p", false)
	d.AppendChild(c, kid)
	d.ClearContainer(c)
	d.ClearContainer(c) // already empty, no-op
	if rec.Count(OpClearContainer) != 1 {
		t.Errorf("ClearContainer mutations = %d, want 1", rec.Count(OpClearContainer))
	}
	if c.ChildCount() != 0 || kid.Parent() != nil {
		t.Error("ClearContainer must detach children")
	}
}

func TestContains(t *testing.T) {
	d := NewDocument()
	root := d.CreateNode("div", false)
	mid := d.CreateNode("div", false)
	leaf := d.CreateNode("hi", true)
	d.AppendChild(root, mid)
	d.AppendChild(mid, leaf)

	if !root.Contains(leaf) || !root.Contains(root) {
		t.Error("Contains should cover descendants and self")
	}
	if leaf.Contains(root) {
		t.Error("a descendant does not contain its ancestor")
	}
}

func TestEmitReachesRootListener(t *testing.T) {
	d := NewDocument()
	root := d.CreateContainer("app")
	btn := d.CreateNode("button", false)
	d.AppendChild(root, btn)

	var seen []*NativeEvent
	d.AddListener(root, "click", func(e *NativeEvent) {
		seen = append(seen, e)
	})

	evt := NewNativeEvent("click", btn, "")
	d.Emit(evt)
	if len(seen) != 1 || seen[0] != evt {
		t.Fatalf("listener saw %d events, want the emitted one", len(seen))
	}

	// Different kind is not delivered.
	d.Emit(NewNativeEvent("input", btn, ""))
	if len(seen) != 1 {
		t.Error("listener must only receive its registered kind")
	}

	// A target outside the root is not delivered.
	detached := d.CreateNode("button", false)
	d.Emit(NewNativeEvent("click", detached, ""))
	if len(seen) != 1 {
		t.Error("listener must not fire for targets outside its root")
	}

	d.RemoveListeners(root)
	d.Emit(NewNativeEvent("click", btn, ""))
	if len(seen) != 1 {
		t.Error("RemoveListeners must drop the listener")
	}
}

func TestNativeEventPreventDefault(t *testing.T) {
	e := NewNativeEvent("submit", nil, "v")
	if e.DefaultPrevented() {
		t.Error("fresh event should not be prevented")
	}
	e.PreventDefault()
	if !e.DefaultPrevented() {
		t.Error("PreventDefault should stick")
	}
	if e.Type() != "submit" || e.Value() != "v" {
		t.Errorf("event = %s/%q, want submit/v", e.Type(), e.Value())
	}
}

func TestRecorderReset(t *testing.T) {
	d := NewDocument()
	rec := &Recorder{}
	d.Observe(rec.Observe)

	d.CreateNode("div", false)
	if rec.Count(OpCreateNode) != 1 {
		t.Fatalf("Count = %d, want 1", rec.Count(OpCreateNode))
	}
	rec.Reset()
	if len(rec.Mutations) != 0 {
		t.Error("Reset must clear the log")
	}
}
