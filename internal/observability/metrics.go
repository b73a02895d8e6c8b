package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh pipeline.
type Metrics struct {
	RegionFetches    *prometheus.CounterVec // labels: region, outcome={success,error}
	RowsDropped      prometheus.Counter
	EventsNormalized prometheus.Counter
	GazetteerMisses  prometheus.Counter

	RefreshCycles     prometheus.Counter
	RefreshDuration   prometheus.Histogram
	SnapshotEvents    prometheus.Gauge
	LastRefreshTime   prometheus.Gauge
	PersistenceErrors prometheus.Counter
	PipelineRunning   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RegionFetches,
		m.RowsDropped,
		m.EventsNormalized,
		m.GazetteerMisses,
		m.RefreshCycles,
		m.RefreshDuration,
		m.SnapshotEvents,
		m.LastRefreshTime,
		m.PersistenceErrors,
		m.PipelineRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RegionFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "region_fetches_total",
			Help:      "Feed fetch attempts per region and outcome.",
		}, []string{"region", "outcome"}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "rows_dropped_total",
			Help:      "Feed rows dropped because their date/time grammar failed to parse.",
		}),
		EventsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "events_normalized_total",
			Help:      "Feed rows successfully normalized into events.",
		}),
		GazetteerMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "gazetteer_misses_total",
			Help:      "Events published without coordinates after gazetteer lookup.",
		}),
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "refresh_cycles_total",
			Help:      "Completed refresh cycles, including degraded ones.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "listings",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a full fetch-normalize-aggregate-publish cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SnapshotEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "listings",
			Name:      "snapshot_events",
			Help:      "Events in the currently published snapshot.",
		}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "listings",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last published snapshot.",
		}),
		PersistenceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "persistence_errors_total",
			Help:      "Failed snapshot writes; publication is unaffected.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "listings",
			Name:      "pipeline_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
	}
}
