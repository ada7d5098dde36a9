package hooks

// Effect declares a side effect that runs after the commit producing this
// render has been applied to the target. Effects never run synchronously
// inside render.
//
// Re-run policy, driven by deps (see Deps): nil = every render, empty =
// once, populated = when any element changes identity. When an effect
// re-runs, the cleanup returned by the previous run is invoked first.
func Effect(c *Ctx, fn func() Cleanup, deps Deps) {
	rec, created := next(c, KindEffect)

	run := created || deps == nil || rec.deps.changed(deps)
	rec.deps = deps
	if !run {
		return
	}

	c.owner.QueueEffect(func() {
		if rec.cleanup != nil {
			rec.cleanup()
			rec.cleanup = nil
		}
		rec.cleanup = fn()
	})
}
