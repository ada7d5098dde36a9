package hooks

// Dispatch feeds an action into a reducer hook.
type Dispatch[A any] func(A)

// Reducer declares a reducer hook: state evolves by folding dispatched
// actions through fn. dispatch updates the record and enqueues the owner
// only when the reduced value differs by identity.
func Reducer[S, A any](c *Ctx, fn func(S, A) S, initial S) (S, Dispatch[A]) {
	return ReducerInit(c, fn, initial, func(s S) S { return s })
}

// ReducerInit is Reducer with an init transform applied to the initial
// argument when the record is first created.
func ReducerInit[S, A, I any](c *Ctx, fn func(S, A) S, initialArg I, init func(I) S) (S, Dispatch[A]) {
	rec, created := next(c, KindReducer)
	if created {
		rec.value = init(initialArg)
		owner := c.owner
		rec.setter = Dispatch[A](func(action A) {
			cur := rec.value.(S)
			nextVal := fn(cur, action)
			if identical(cur, nextVal) {
				return
			}
			rec.value = nextVal
			owner.Invalidate()
		})
	}
	return rec.value.(S), rec.setter.(Dispatch[A])
}
