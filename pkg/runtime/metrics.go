package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects engine counters. All methods are nil-safe so the engine
// can run without a metrics registry.
type Metrics struct {
	rendersTotal   prometheus.Counter
	commitsTotal   prometheus.Counter
	effectsTotal   prometheus.Counter
	flushesTotal   prometheus.Counter
	mutationsTotal *prometheus.CounterVec
	flushSeconds   prometheus.Histogram
}

// NewMetrics registers the engine metrics with reg. namespace defaults to
// "lumo" when empty.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "lumo"
	}
	factory := promauto.With(reg)
	return &Metrics{
		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_renders_total",
			Help:      "Total component render invocations.",
		}),
		commitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instance_commits_total",
			Help:      "Total lifecycle commits processed by the scheduler.",
		}),
		effectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_flushed_total",
			Help:      "Total post-commit effects executed.",
		}),
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_flushes_total",
			Help:      "Total scheduler flush cycles.",
		}),
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "target_mutations_total",
			Help:      "Total render-target mutations, by operation.",
		}, []string{"op"}),
		flushSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flush_duration_seconds",
			Help:      "Wall time of one scheduler flush cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		}),
	}
}

func (m *Metrics) render() {
	if m != nil {
		m.rendersTotal.Inc()
	}
}

func (m *Metrics) commit() {
	if m != nil {
		m.commitsTotal.Inc()
	}
}

func (m *Metrics) effect() {
	if m != nil {
		m.effectsTotal.Inc()
	}
}

func (m *Metrics) flush(seconds float64) {
	if m != nil {
		m.flushesTotal.Inc()
		m.flushSeconds.Observe(seconds)
	}
}

// Mutation records one render-target mutation labeled by operation name.
// Exposed so the engine can feed it from a document observer.
func (m *Metrics) Mutation(op string) {
	if m != nil {
		m.mutationsTotal.WithLabelValues(op).Inc()
	}
}
