package metrics

import "github.com/prometheus/client_golang/prometheus"

// SweepMetrics holds Prometheus metrics for the expiry alert sweeper.
type SweepMetrics struct {
	AlertsGenerated *prometheus.CounterVec
	AlertsPruned    prometheus.Counter
	SweepDuration   prometheus.Histogram
	SweepErrors     prometheus.Counter
}

// NewSweepMetrics creates and registers sweeper metrics on the given registry.
func NewSweepMetrics(reg prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "alerts_generated_total",
			Help:      "Total expiry alerts generated by type.",
		}, []string{"alert_type"}),
		AlertsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "alerts_pruned_total",
			Help:      "Total read expiry alerts pruned after the retention window.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Alert sweep duration in seconds.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		SweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "errors_total",
			Help:      "Total alert sweeps that failed.",
		}),
	}

	reg.MustRegister(m.AlertsGenerated, m.AlertsPruned, m.SweepDuration, m.SweepErrors)
	return m
}
