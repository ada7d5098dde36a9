package runtime

import (
	"fmt"
	"time"

	"github.com/lumo-dev/lumo/pkg/telemetry"
)

// Scheduler coalesces update requests into batches. An instance appears at
// most once per batch no matter how many times it was scheduled; batches
// commit in insertion order; queued effects run FIFO after all commits of
// the cycle. Flushing is trampoline-style: work scheduled while a cycle is
// running lands in the next cycle, never in a recursive flush.
type Scheduler struct {
	pending    []*Instance
	pendingSet map[*Instance]bool
	effects    []func()

	isProcessing bool

	sink    telemetry.Sink
	metrics *Metrics
}

// NewScheduler creates an idle scheduler. sink receives per-instance
// commit failures; metrics may be nil.
func NewScheduler(sink telemetry.Sink, metrics *Metrics) *Scheduler {
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	return &Scheduler{
		pendingSet: make(map[*Instance]bool),
		sink:       sink,
		metrics:    metrics,
	}
}

// Schedule enqueues an instance for the next flush cycle. Duplicate
// requests within one batch are dropped.
func (s *Scheduler) Schedule(in *Instance) {
	if in == nil || s.pendingSet[in] {
		return
	}
	s.pendingSet[in] = true
	s.pending = append(s.pending, in)
}

// QueueEffect defers fn until after the current batch's commits have been
// applied to the render target.
func (s *Scheduler) QueueEffect(fn func()) {
	if fn != nil {
		s.effects = append(s.effects, fn)
	}
}

// HasWork reports whether anything is pending.
func (s *Scheduler) HasWork() bool {
	return len(s.pending) > 0 || len(s.effects) > 0
}

// Flush drains pending updates and effects until the scheduler is idle.
// Nested calls (from handler code running inside a commit) are rejected;
// their work stays queued for the cycle already in progress.
func (s *Scheduler) Flush() {
	if s.isProcessing {
		return
	}
	s.isProcessing = true
	defer func() { s.isProcessing = false }()

	for s.HasWork() {
		start := time.Now()

		// Snapshot and clear before iterating so updates scheduled during
		// this cycle only affect the next one.
		batch := s.pending
		s.pending = nil
		s.pendingSet = make(map[*Instance]bool)

		for _, in := range batch {
			s.commitOne(in)
		}

		effects := s.effects
		s.effects = nil
		for _, fn := range effects {
			s.runEffect(fn)
		}

		s.metrics.flush(time.Since(start).Seconds())
	}
}

// commitOne commits a single instance, isolating failures: one panicking
// component does not abort the rest of the batch.
func (s *Scheduler) commitOne(in *Instance) {
	defer func() {
		if r := recover(); r != nil {
			s.sink.Report("component", "Component render failed", map[string]any{
				"code":      "E300",
				"component": in.Name(),
				"panic":     fmt.Sprint(r),
			})
		}
	}()
	in.commit()
	s.metrics.commit()
}

func (s *Scheduler) runEffect(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.sink.Report("hook", "Effect panicked", map[string]any{
				"panic": fmt.Sprint(r),
			})
		}
	}()
	fn()
	s.metrics.effect()
}
