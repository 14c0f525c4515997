package routing

import (
	"time"

	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Route results
const (
	resultPath   = "path"
	resultDirect = "direct"
)

// Metrics collects routing engine metrics. A nil *Metrics records nothing.
type Metrics struct {
	routeTotal     *prometheus.CounterVec
	searchDuration prometheus.Histogram
	graphNodes     prometheus.Gauge
	graphEdges     prometheus.Gauge
	graphBuilds    prometheus.Counter
	skippedRecords *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		routeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_route_requests_total",
			Help: "Total route requests by result type",
		}, []string{"result"}), // "path" or "direct"

		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campus_route_search_duration_seconds",
			Help:    "Node selection and path search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14), // 50us to ~400ms
		}),

		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "campus_graph_nodes",
			Help: "Number of nodes of the active graph",
		}),

		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "campus_graph_edges",
			Help: "Number of directed edges of the active graph",
		}),

		graphBuilds: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_graph_builds_total",
			Help: "Total graph builds",
		}),

		skippedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_skipped_records_total",
			Help: "Total input records skipped during graph builds",
		}, []string{"kind"}), // "poi" or "path"
	}
}

func (m *Metrics) observeRoute(direct bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := resultPath
	if direct {
		result = resultDirect
	}
	m.routeTotal.WithLabelValues(result).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeBuild(stats graph.BuildStats) {
	if m == nil {
		return
	}
	m.graphBuilds.Inc()
	m.graphNodes.Set(float64(stats.Nodes))
	m.graphEdges.Set(float64(stats.Edges))
	m.skippedRecords.WithLabelValues("poi").Add(float64(stats.SkippedPOIs))
	m.skippedRecords.WithLabelValues("path").Add(float64(stats.SkippedPaths))
}
