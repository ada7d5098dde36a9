package hooks

import "reflect"

// Deps is a dependency list for Effect and Memo.
//
// A nil Deps means "no dependency list": the hook re-runs on every render.
// An empty (non-nil) Deps runs once and never again. A populated Deps
// re-runs the hook when the length or any positional element differs by
// identity from the previous render.
type Deps []any

// On builds a dependency list. On() with no arguments yields the
// run-once empty list.
func On(deps ...any) Deps {
	if deps == nil {
		return Deps{}
	}
	return Deps(deps)
}

// changed reports whether next differs from prev under the positional
// identity rule.
func (prev Deps) changed(next Deps) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !identical(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// identical reports value identity: == for comparable values, underlying
// pointer equality for slices, maps, funcs, and channels. This mirrors
// reference identity in the hook model; structural equality is deliberately
// not used.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() && rb.IsNil()
		}
		return ra.Pointer() == rb.Pointer()
	case reflect.Pointer:
		return ra.Pointer() == rb.Pointer()
	default:
		if ra.Comparable() {
			return a == b
		}
		return false
	}
}
