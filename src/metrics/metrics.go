package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// -----------------------------------------------------------------------------
// Metrics holds all Prometheus metrics for the service. Exposed on /metrics.
// -----------------------------------------------------------------------------

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec // labels: endpoint
	RequestErrors    *prometheus.CounterVec // labels: endpoint
	SnapshotBuilds   prometheus.Counter
	SnapshotBuildDur prometheus.Histogram
	FetchErrors      prometheus.Counter
	RefreshRuns      prometheus.Counter
	RefreshDur       prometheus.Histogram
	WSClients        prometheus.Gauge
}

// -----------------------------------------------------------------------------

// NewMetrics registers and returns all Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockinsight_requests_total",
			Help: "Total API requests served (by endpoint)",
		}, []string{"endpoint"}),
		RequestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockinsight_request_errors_total",
			Help: "API requests that ended in an error response (by endpoint)",
		}, []string{"endpoint"}),
		SnapshotBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockinsight_snapshot_builds_total",
			Help: "Total analysis snapshots computed",
		}),
		SnapshotBuildDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockinsight_snapshot_build_duration_seconds",
			Help:    "Snapshot computation latency",
			Buckets: prometheus.DefBuckets,
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockinsight_fetch_errors_total",
			Help: "Upstream data fetches that failed after retries",
		}),
		RefreshRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockinsight_refresh_runs_total",
			Help: "Scheduled watchlist refresh runs",
		}),
		RefreshDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockinsight_refresh_duration_seconds",
			Help:    "Scheduled refresh latency (fetch plus recompute)",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockinsight_ws_clients",
			Help: "Currently connected WebSocket clients",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestErrors,
		m.SnapshotBuilds,
		m.SnapshotBuildDur,
		m.FetchErrors,
		m.RefreshRuns,
		m.RefreshDur,
		m.WSClients,
	)

	return m
}
