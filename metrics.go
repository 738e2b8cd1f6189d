package constellation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes simulation counters to Prometheus. Attach it with
// Simulation.SetMetrics; a nil *Metrics disables reporting.
type Metrics struct {
	NodesTotal    prometheus.Gauge
	EdgesTotal    prometheus.Gauge
	QueueDepth    prometheus.Gauge
	NodesSpawned  prometheus.Counter
	GrowthDropped prometheus.Counter
	TickDuration  prometheus.Histogram
	TicksSkipped  prometheus.Counter
}

// NewMetrics creates and registers every metric with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}
	factory := promauto.With(reg)

	m.NodesTotal = factory.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_nodes_total",
		Help: "Number of nodes in the graph",
	})
	m.EdgesTotal = factory.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_edges_total",
		Help: "Number of edges in the graph",
	})
	m.QueueDepth = factory.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_growth_queue_depth",
		Help: "Pending growth requests",
	})
	m.NodesSpawned = factory.NewCounter(prometheus.CounterOpts{
		Name: "constellation_nodes_spawned_total",
		Help: "Nodes materialized since start",
	})
	m.GrowthDropped = factory.NewCounter(prometheus.CounterOpts{
		Name: "constellation_growth_dropped_total",
		Help: "Growth requests dropped because the queue was full",
	})
	m.TickDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "constellation_tick_duration_seconds",
		Help:    "Wall time spent in one simulation tick",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
	m.TicksSkipped = factory.NewCounter(prometheus.CounterOpts{
		Name: "constellation_ticks_skipped_total",
		Help: "Ticks skipped because the simulation or surface was not ready",
	})
	return m
}

// observe publishes the gauges for the current state.
func (m *Metrics) observe(s Stats) {
	if m == nil {
		return
	}
	m.NodesTotal.Set(float64(s.Nodes))
	m.EdgesTotal.Set(float64(s.Edges))
	m.QueueDepth.Set(float64(s.Queued))
}
