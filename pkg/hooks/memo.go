package hooks

import "fmt"

// Memo memoizes factory() across renders, recomputing only when deps
// change under the same rule as Effect. A panic inside factory is
// recovered and reported to the owner's error sink; the previous value
// (zero value on the first render) is retained.
func Memo[T any](c *Ctx, factory func() T, deps Deps) T {
	rec, created := next(c, KindMemo)

	run := created || deps == nil || rec.deps.changed(deps)
	rec.deps = deps

	if created && rec.value == nil {
		var zero T
		rec.value = zero
	}

	if run {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.owner.ReportError("hook", "Memo factory panicked",
						map[string]any{"panic": fmt.Sprint(r)})
				}
			}()
			rec.value = factory()
		}()
	}

	return rec.value.(T)
}
