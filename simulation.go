package constellation

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Simulation is the growth-and-physics engine. It owns the node/edge store
// exclusively and is driven by calling Tick once per frame and Render after
// it. A Simulation is not safe for concurrent use.
type Simulation struct {
	cfg        Config
	nodeColor  Color
	edgeColor  Color
	background Color

	store    *Store
	growth   growthScheduler
	rng      *rand.Rand
	viewport Rect

	// per-frame scratch buffers
	forces    []Vec2
	drawOrder []int

	metrics *Metrics
	spawned int
	ticks   int
}

// NewSimulation creates a stopped simulation using cfg. Randomness comes from
// a PCG source seeded with fresh entropy; use SetSeed for reproducible runs.
func NewSimulation(cfg Config) *Simulation {
	sim := &Simulation{
		store: NewStore(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	sim.applyConfig(cfg)
	return sim
}

// SetSeed replaces the random source with a deterministic one.
func (sim *Simulation) SetSeed(seed uint64) {
	sim.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetRand replaces the random source.
func (sim *Simulation) SetRand(rng *rand.Rand) {
	sim.rng = rng
}

// SetMetrics attaches Prometheus metrics. Pass nil to detach.
func (sim *Simulation) SetMetrics(m *Metrics) {
	sim.metrics = m
}

// Config returns the active configuration.
func (sim *Simulation) Config() Config {
	return sim.cfg
}

// SetConfig replaces the configuration. When the node colour changes and
// nodes already exist, every node is recoloured immediately, without fading.
func (sim *Simulation) SetConfig(cfg Config) {
	prev := sim.nodeColor
	sim.applyConfig(cfg)
	if sim.nodeColor != prev && sim.store.Len() > 0 {
		sim.store.Recolor(sim.nodeColor)
	}
}

func (sim *Simulation) applyConfig(cfg Config) {
	sim.cfg = cfg
	sim.nodeColor = colorOr(cfg.NodeColor, defaultGrey)
	sim.edgeColor = colorOr(cfg.EdgeColor, defaultGrey)
	sim.background = colorOr(cfg.BackgroundColor, Color{})
}

// Start seeds the graph with its first node inside a width×height viewport
// and begins growth. Starting a stopped simulation discards the old graph.
// Starting a running simulation only updates the viewport. A MaxNodes below 1
// leaves the graph empty, so every Tick is skipped.
func (sim *Simulation) Start(width, height float64, now time.Duration) {
	sim.Resize(width, height)
	if sim.growth.running() {
		return
	}
	sim.store.Reset()
	sim.spawned = 0
	sim.ticks = 0
	sim.growth.start(now)
	if sim.cfg.MaxNodes >= 1 {
		sim.seed(now)
		if sim.metrics != nil {
			sim.metrics.NodesSpawned.Inc()
		}
	}
	sim.publish()
}

// Stop halts growth and discards pending growth requests. The graph is kept
// until the next Start.
func (sim *Simulation) Stop() {
	sim.growth.stop()
	sim.publish()
}

// Running reports whether the simulation has been started and not stopped.
func (sim *Simulation) Running() bool {
	return sim.growth.running()
}

// Resize updates the viewport used for centering and containment. Nodes are
// not moved.
func (sim *Simulation) Resize(width, height float64) {
	sim.viewport = Rect{Width: width, Height: height}
}

// Viewport returns the current viewport.
func (sim *Simulation) Viewport() Rect {
	return sim.viewport
}

// Tick advances the simulation to now: growth scheduling, node
// materialization, forces and appearance. It reports false when the tick was
// skipped because the simulation is not running or has no viewport.
func (sim *Simulation) Tick(now time.Duration) bool {
	if !sim.growth.running() || sim.viewport.Empty() || sim.store.Len() == 0 {
		if sim.metrics != nil {
			sim.metrics.TicksSkipped.Inc()
		}
		return false
	}
	var t0 time.Time
	if sim.metrics != nil {
		t0 = time.Now()
	}

	if sim.growth.maybeEnqueue(now, sim.store.Len(), &sim.cfg, sim.rng) == enqueueDropped && sim.metrics != nil {
		sim.metrics.GrowthDropped.Inc()
	}
	if req, ok := sim.growth.popDue(now); ok {
		if sim.materialize(req.ParentID, now) && sim.metrics != nil {
			sim.metrics.NodesSpawned.Inc()
		}
	}

	sim.step()
	sim.animate(now)
	sim.ticks++

	if sim.metrics != nil {
		sim.metrics.TickDuration.Observe(time.Since(t0).Seconds())
	}
	sim.publish()
	return true
}

func (sim *Simulation) publish() {
	if sim.metrics != nil {
		sim.metrics.observe(sim.Stats())
	}
}

// Stats summarizes the simulation. It carries counts and aggregate motion
// only; node positions are not exposed.
type Stats struct {
	Nodes      int
	Edges      int
	Queued     int
	Spawned    int
	Enqueued   int
	Dropped    int
	Ticks      int
	MeanDegree float64
	MeanSpeed  float64
	SpeedStd   float64
}

// Stats returns the current summary.
func (sim *Simulation) Stats() Stats {
	s := Stats{
		Nodes:    sim.store.Len(),
		Edges:    sim.store.EdgeCount(),
		Queued:   sim.growth.depth(),
		Spawned:  sim.spawned,
		Enqueued: sim.growth.enqueued,
		Dropped:  sim.growth.dropped,
		Ticks:    sim.ticks,
	}
	nodes := sim.store.Nodes()
	if len(nodes) == 0 {
		return s
	}
	speeds := make([]float64, len(nodes))
	degrees := make([]float64, len(nodes))
	for i := range nodes {
		speeds[i] = nodes[i].Vel.Len()
		degrees[i] = float64(sim.store.Degree(i))
	}
	s.MeanDegree = stat.Mean(degrees, nil)
	if len(nodes) > 1 {
		s.MeanSpeed, s.SpeedStd = stat.MeanStdDev(speeds, nil)
	} else {
		s.MeanSpeed = speeds[0]
	}
	return s
}
