package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink counts error reports by kind in a Prometheus counter.
type MetricsSink struct {
	reports *prometheus.CounterVec
}

// MetricsSinkConfig configures the Prometheus error sink.
type MetricsSinkConfig struct {
	// Namespace is the metrics namespace (default: "lumo").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// NewMetricsSink creates a MetricsSink registered with the given registry.
func NewMetricsSink(config MetricsSinkConfig) *MetricsSink {
	if config.Namespace == "" {
		config.Namespace = "lumo"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(config.Registry)

	return &MetricsSink{
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "error_reports_total",
			Help:        "Total number of engine error reports by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

// Report implements Sink.
func (s *MetricsSink) Report(kind, _ string, _ map[string]any) {
	defer recoverReport()
	s.reports.WithLabelValues(kind).Inc()
}
