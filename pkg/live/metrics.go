package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts session activity. Methods are nil-safe so the server
// runs without a registry.
type Metrics struct {
	sessionsActive  prometheus.Gauge
	sessionsTotal   prometheus.Counter
	eventsTotal     *prometheus.CounterVec
	patchFrames     prometheus.Counter
	patchMutations  prometheus.Counter
	patchBytesTotal prometheus.Counter
}

// NewMetrics registers the session metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "sessions_active",
			Help:      "Currently connected sessions.",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total sessions accepted.",
		}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "events_received_total",
			Help:      "Input events received, by kind.",
		}, []string{"kind"}),
		patchFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "patch_frames_sent_total",
			Help:      "Patch frames written to clients.",
		}),
		patchMutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "patch_mutations_sent_total",
			Help:      "Document mutations shipped inside patch frames.",
		}),
		patchBytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lumo",
			Subsystem: "live",
			Name:      "patch_bytes_sent_total",
			Help:      "Bytes of encoded patch frames written to clients.",
		}),
	}
}

func (m *Metrics) sessionOpened() {
	if m != nil {
		m.sessionsActive.Inc()
		m.sessionsTotal.Inc()
	}
}

func (m *Metrics) sessionClosed() {
	if m != nil {
		m.sessionsActive.Dec()
	}
}

func (m *Metrics) eventReceived(kind string) {
	if m != nil {
		m.eventsTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) patchSent(mutations, bytes int) {
	if m != nil {
		m.patchFrames.Inc()
		m.patchMutations.Add(float64(mutations))
		m.patchBytesTotal.Add(float64(bytes))
	}
}
