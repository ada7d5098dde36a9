package hooks

import (
	"fmt"

	"github.com/lumo-dev/lumo/internal/errors"
)

// Kind identifies the type of a hook record.
type Kind uint8

const (
	KindState Kind = iota + 1
	KindEffect
	KindReducer
	KindRef
	KindMemo
)

// String returns a human-readable name for the hook kind.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindEffect:
		return "Effect"
	case KindReducer:
		return "Reducer"
	case KindRef:
		return "Ref"
	case KindMemo:
		return "Memo"
	default:
		return "Unknown"
	}
}

// Cleanup is an optional function returned by an effect body, invoked
// before the effect re-runs and when the owning instance unmounts.
type Cleanup func()

// record is a single hook slot. Identified purely by its position in the
// owning store; the same position must hold the same hook kind on every
// render.
type record struct {
	kind    Kind
	value   any     // current state/reducer value, memo result, or *RefCell
	setter  any     // stable setter/dispatch closure
	deps    Deps    // deps from the previous run (effect/memo)
	hasRun  bool    // effect/memo has computed at least once
	cleanup Cleanup // pending effect cleanup
}

// Owner is the component instance view the hook store needs: enough to
// request a re-render, defer an effect, and report a recovered error.
// The runtime's component instance implements it.
type Owner interface {
	// Invalidate enqueues the owning instance for re-render. The owner
	// decides whether it is mounted and may drop the request.
	Invalidate()

	// QueueEffect defers fn until after the current commit has been
	// applied to the render target. Effects never run inside render.
	QueueEffect(fn func())

	// ReportError forwards a recovered error to the engine's sink.
	ReportError(kind, message string, context map[string]any)
}

// NopOwner discards invalidations and effects. Used by the text renderer,
// which evaluates components once and never commits.
type NopOwner struct{}

func (NopOwner) Invalidate()                                {}
func (NopOwner) QueueEffect(func())                         {}
func (NopOwner) ReportError(string, string, map[string]any) {}

// Store is the ordered hook list of one component instance. It persists
// across renders of that instance and is disposed with it.
type Store struct {
	records []*record

	// First-render hook sequence, locked in for debug validation.
	kinds    []Kind
	rendered bool
}

// NewStore creates an empty hook store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of hook records.
func (s *Store) Len() int { return len(s.records) }

// RunCleanups invokes all pending effect cleanups in record order and
// clears them. Called by the runtime during the unmount cascade.
func (s *Store) RunCleanups() {
	for _, r := range s.records {
		if r.cleanup != nil {
			r.cleanup()
			r.cleanup = nil
		}
	}
}

// Ctx is the active hook context for a single render of one instance.
// It is valid only between Begin and End; hook calls outside that window
// panic with a HookContextError.
type Ctx struct {
	store  *Store
	owner  Owner
	cursor int
	active bool
	debug  bool
}

// Begin opens a hook context for one render of the instance owning store.
// The cursor resets to zero; hook calls advance it.
func Begin(store *Store, owner Owner, debug bool) *Ctx {
	return &Ctx{store: store, owner: owner, active: true, debug: debug}
}

// End closes the render. In debug mode it validates that the render
// enumerated the same hook count as the first render of this instance.
func (c *Ctx) End() {
	c.active = false
	s := c.store
	if !s.rendered {
		s.rendered = true
		return
	}
	if c.debug && c.cursor != len(s.kinds) {
		panic(errors.New("E202").
			With("expected", len(s.kinds)).
			With("got", c.cursor))
	}
}

// Owner returns the owner backing this context.
func (c *Ctx) Owner() Owner { return c.owner }

// next returns the record at the current cursor, creating it on the first
// render, and validates hook kind stability.
func next(c *Ctx, k Kind) (*record, bool) {
	if c == nil || !c.active {
		panic(errors.New("E201").With("hook", k.String()))
	}

	idx := c.cursor
	c.cursor++

	s := c.store
	if idx < len(s.records) {
		r := s.records[idx]
		if c.debug && s.kinds[idx] != k {
			panic(errors.New("E202").With("detail",
				fmt.Sprintf("index %d: expected %s, got %s", idx, s.kinds[idx], k)))
		}
		return r, false
	}

	if s.rendered && c.debug {
		panic(errors.New("E202").
			With("detail", fmt.Sprintf("extra %s hook at index %d", k, idx)))
	}

	r := &record{kind: k}
	s.records = append(s.records, r)
	s.kinds = append(s.kinds, k)
	return r, true
}
