// Package vtest provides test harnesses for engine behavior tests: a
// document with a mutation recorder, an engine in debug mode, and
// helpers for emitting input events.
package vtest

import (
	"sync"
	"testing"

	"github.com/lumo-dev/lumo/pkg/dom"
	"github.com/lumo-dev/lumo/pkg/runtime"
	"github.com/lumo-dev/lumo/pkg/vdom"
)

// Harness bundles a fresh document, a debug engine, a root container,
// and recorders for mutations and error reports.
type Harness struct {
	T         *testing.T
	Doc       *dom.Document
	Eng       *runtime.Engine
	Container *dom.Node
	Recorder  *dom.Recorder
	Sink      *RecordingSink
}

// New builds a harness. The engine runs in debug mode so hook-order
// violations fail tests loudly.
func New(t *testing.T) *Harness {
	t.Helper()

	doc := dom.NewDocument()
	rec := &dom.Recorder{}
	doc.Observe(rec.Observe)
	sink := &RecordingSink{}

	eng := runtime.New(runtime.Config{
		Document: doc,
		Sink:     sink,
		Debug:    true,
	})

	return &Harness{
		T:         t,
		Doc:       doc,
		Eng:       eng,
		Container: doc.CreateContainer("app"),
		Recorder:  rec,
		Sink:      sink,
	}
}

// Render renders v into the harness container, failing the test on a
// top-level error.
func (h *Harness) Render(v *vdom.VNode) *dom.Node {
	h.T.Helper()
	live, err := h.Eng.Render(v, h.Container)
	if err != nil {
		h.T.Fatalf("Render failed: %v", err)
	}
	return live
}

// Unmount tears down the harness container's tree.
func (h *Harness) Unmount() bool {
	return h.Eng.Unmount(h.Container)
}

// ResetMutations clears the recorded mutation log, typically right
// before the operation under test.
func (h *Harness) ResetMutations() {
	h.Recorder.Reset()
}

// MutationCount returns how many mutations of the given op were
// recorded since the last reset.
func (h *Harness) MutationCount(op dom.MutationOp) int {
	return h.Recorder.Count(op)
}

// Mutations returns the recorded mutation log.
func (h *Harness) Mutations() []dom.Mutation {
	return h.Recorder.Mutations
}

// Click emits a click event targeted at n and drains the updates it
// triggered.
func (h *Harness) Click(n *dom.Node) {
	h.T.Helper()
	h.Eng.Dispatch(dom.NewNativeEvent("click", n, ""))
}

// Input emits an input event carrying value, targeted at n.
func (h *Harness) Input(n *dom.Node, value string) {
	h.T.Helper()
	h.Eng.Dispatch(dom.NewNativeEvent("input", n, value))
}

// Flush drains updates scheduled outside an engine entry point.
func (h *Harness) Flush() {
	h.Eng.Flush()
}

// Report is one recorded sink report.
type Report struct {
	Kind    string
	Message string
	Context map[string]any
}

// RecordingSink captures error reports for assertions. Safe for
// concurrent use.
type RecordingSink struct {
	mu      sync.Mutex
	Reports []Report
}

// Report implements telemetry.Sink.
func (s *RecordingSink) Report(kind, message string, context map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reports = append(s.Reports, Report{Kind: kind, Message: message, Context: context})
}

// Count returns the number of reports with the given kind.
func (s *RecordingSink) Count(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.Reports {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent report, or a zero Report when empty.
func (s *RecordingSink) Last() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Reports) == 0 {
		return Report{}
	}
	return s.Reports[len(s.Reports)-1]
}
