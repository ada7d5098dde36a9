package hooks

// StateSetter updates a state hook's value. Its identity is stable across
// renders of the owning instance.
type StateSetter[T any] struct {
	rec   *record
	owner Owner
}

// Set replaces the state value. If the new value is identical to the
// current one the call is a no-op; otherwise the owning instance is
// enqueued for re-render (if mounted).
func (s *StateSetter[T]) Set(next T) {
	cur := s.rec.value.(T)
	if identical(cur, next) {
		return
	}
	s.rec.value = next
	s.owner.Invalidate()
}

// Update computes the next value from the previous one, with the same
// identity gate as Set.
func (s *StateSetter[T]) Update(fn func(T) T) {
	s.Set(fn(s.rec.value.(T)))
}

// State declares a state hook with the given initial value. It returns the
// current value and a stable setter.
func State[T any](c *Ctx, initial T) (T, *StateSetter[T]) {
	return StateFunc(c, func() T { return initial })
}

// StateFunc is State with a lazy initializer, evaluated only when the
// record is first created.
func StateFunc[T any](c *Ctx, init func() T) (T, *StateSetter[T]) {
	rec, created := next(c, KindState)
	if created {
		rec.value = init()
		rec.setter = &StateSetter[T]{rec: rec, owner: c.owner}
	}
	return rec.value.(T), rec.setter.(*StateSetter[T])
}
