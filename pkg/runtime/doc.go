// Package runtime is the engine core: the component lifecycle controller,
// the batched update scheduler, and the reconciler that turns virtual tree
// diffs into render-target mutations.
//
// Everything here is single-threaded by design. The engine is driven from
// one cooperative loop: an entry point (Render, Dispatch, Flush) does its
// work and then drains the scheduler trampoline before returning. No type
// in this package is safe for concurrent use.
package runtime
