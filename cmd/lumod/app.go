package main

import (
	"fmt"
	"strings"

	"github.com/lumo-dev/lumo"
	"github.com/lumo-dev/lumo/pkg/events"
	"github.com/lumo-dev/lumo/pkg/hooks"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// demoApp is the tree served by `lumod serve`: a counter and a keyed
// todo list, enough to exercise state, events, and list reconciliation.
func demoApp() *lumo.Node {
	return lumo.CreateElement(appComponent, nil)
}

var appComponent = lumo.Func("App", func(c *hooks.Ctx, _ lumo.Props) *lumo.Node {
	return vdom.Div(lumo.Props{"class": "app"},
		vdom.H1(nil, "Lumo demo"),
		lumo.CreateElement(counterComponent, nil),
		lumo.CreateElement(todoComponent, nil),
	)
})

var counterComponent = lumo.Func("Counter", func(c *hooks.Ctx, _ lumo.Props) *lumo.Node {
	count, setCount := hooks.State(c, 0)

	return vdom.Div(lumo.Props{"class": "counter"},
		vdom.Button(lumo.Props{
			"onClick": func(*events.Event) {
				setCount.Update(func(n int) int { return n - 1 })
			},
		}, "-"),
		vdom.Span(nil, vdom.Textf("count: %d", count)),
		vdom.Button(lumo.Props{
			"onClick": func(*events.Event) {
				setCount.Update(func(n int) int { return n + 1 })
			},
		}, "+"),
	)
})

type todoItem struct {
	ID    int
	Label string
	Done  bool
}

type todoAction struct {
	kind  string // "add", "toggle", "remove"
	id    int
	label string
}

type todoState struct {
	nextID int
	items  []todoItem
}

func todoReduce(s todoState, a todoAction) todoState {
	switch a.kind {
	case "add":
		items := make([]todoItem, len(s.items), len(s.items)+1)
		copy(items, s.items)
		items = append(items, todoItem{ID: s.nextID, Label: a.label})
		return todoState{nextID: s.nextID + 1, items: items}
	case "toggle":
		items := make([]todoItem, len(s.items))
		copy(items, s.items)
		for i := range items {
			if items[i].ID == a.id {
				items[i].Done = !items[i].Done
			}
		}
		return todoState{nextID: s.nextID, items: items}
	case "remove":
		items := make([]todoItem, 0, len(s.items))
		for _, it := range s.items {
			if it.ID != a.id {
				items = append(items, it)
			}
		}
		return todoState{nextID: s.nextID, items: items}
	default:
		return s
	}
}

var todoComponent = lumo.Func("TodoList", func(c *hooks.Ctx, _ lumo.Props) *lumo.Node {
	state, dispatch := hooks.Reducer(c, todoReduce, todoState{
		nextID: 3,
		items: []todoItem{
			{ID: 1, Label: "write components"},
			{ID: 2, Label: "wire the event loop"},
		},
	})
	draft, setDraft := hooks.State(c, "")

	add := func(*events.Event) {
		label := strings.TrimSpace(draft)
		if label == "" {
			return
		}
		dispatch(todoAction{kind: "add", label: label})
		setDraft.Set("")
	}

	return vdom.Div(lumo.Props{"class": "todos"},
		vdom.Input(lumo.Props{
			"type":  "text",
			"value": draft,
			"onInput": func(e *events.Event) {
				setDraft.Set(e.Value())
			},
		}),
		vdom.Button(lumo.Props{"onClick": add}, "add"),
		vdom.Ul(nil, vdom.Range(state.items, func(it todoItem, _ int) *lumo.Node {
			return vdom.Li(vdom.Keyed(it.ID, lumo.Props{
				"class": todoClass(it),
				"onClick": func(*events.Event) {
					dispatch(todoAction{kind: "toggle", id: it.ID})
				},
			}),
				it.Label,
				vdom.Button(lumo.Props{
					"onClick": func(e *events.Event) {
						e.StopPropagation()
						dispatch(todoAction{kind: "remove", id: it.ID})
					},
				}, "x"),
			)
		})),
		vdom.P(nil, vdom.Textf("%d items", len(state.items))),
	)
})

func todoClass(it todoItem) string {
	if it.Done {
		return fmt.Sprintf("todo todo-done todo-%d", it.ID)
	}
	return fmt.Sprintf("todo todo-%d", it.ID)
}
