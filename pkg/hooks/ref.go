package hooks

// RefCell is a single mutable cell with stable identity across renders.
// Mutating Current never triggers a re-render.
type RefCell[T any] struct {
	Current T
}

// Ref declares a ref hook, returning the same cell on every render of the
// owning instance.
func Ref[T any](c *Ctx, initial T) *RefCell[T] {
	rec, created := next(c, KindRef)
	if created {
		rec.value = &RefCell[T]{Current: initial}
	}
	return rec.value.(*RefCell[T])
}
