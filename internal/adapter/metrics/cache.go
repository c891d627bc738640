package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the dashboard cache layers.
type CacheMetrics struct {
	Hits      *prometheus.CounterVec
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
// The layer label distinguishes memory hits from Redis hits.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total dashboard cache hits by layer (memory/redis).",
		}, []string{"layer"}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total dashboard cache lookups that fell through to PostgreSQL.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Total expired in-memory cache entries evicted.",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Current number of entries in the in-memory cache.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Entries)
	return m
}
