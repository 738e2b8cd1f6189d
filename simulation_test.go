package constellation

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// runFor ticks sim at 60 TPS from start for d and returns the final time.
func runFor(sim *Simulation, start, d time.Duration) time.Duration {
	now := start
	for now < start+d {
		now += frame
		sim.Tick(now)
	}
	return now
}

func TestSingleNodeGraph(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxNodes = 1
	sim := newStartedSim(cfg, 1)

	if op := sim.store.Node(0).Opacity; op != 0 {
		t.Errorf("initial opacity = %v, want 0", op)
	}
	runFor(sim, 0, 5*time.Second)

	if sim.store.Len() != 1 || sim.store.EdgeCount() != 0 {
		t.Errorf("nodes=%d edges=%d, want 1 and 0", sim.store.Len(), sim.store.EdgeCount())
	}
	if op := sim.store.Node(0).Opacity; op != 1 {
		t.Errorf("opacity after 5s = %v, want 1", op)
	}
	if st := sim.Stats(); st.Enqueued != 0 || st.Queued != 0 {
		t.Errorf("growth requested at capacity: %+v", st)
	}
}

func TestGrowthReachesMaxNodes(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 42)
	prevNodes, prevEdges := 1, 0
	now := time.Duration(0)
	for now < 60*time.Second {
		now += frame
		sim.Tick(now)
		n, e := sim.store.Len(), sim.store.EdgeCount()
		if n < prevNodes || e < prevEdges {
			t.Fatalf("graph shrank at %v: nodes %d→%d edges %d→%d", now, prevNodes, n, prevEdges, e)
		}
		if n > sim.cfg.MaxNodes {
			t.Fatalf("nodes %d exceed MaxNodes", n)
		}
		prevNodes, prevEdges = n, e
	}
	if sim.store.Len() != 25 {
		t.Errorf("nodes after 60s = %d, want 25", sim.store.Len())
	}
	if sim.store.EdgeCount() < 24 {
		t.Errorf("edges = %d, want at least one per child", sim.store.EdgeCount())
	}
}

func TestGrowthPacing(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 7)
	// First request at 1s, materialized 1.2s later.
	runFor(sim, 0, 2100*time.Millisecond)
	if sim.store.Len() != 1 {
		t.Errorf("nodes at 2.1s = %d, want 1", sim.store.Len())
	}
	runFor(sim, 2100*time.Millisecond, 300*time.Millisecond)
	if sim.store.Len() != 2 {
		t.Errorf("nodes at 2.4s = %d, want 2", sim.store.Len())
	}
}

func TestStopDiscardsQueue(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 3)
	now := runFor(sim, 0, 1100*time.Millisecond)
	if sim.Stats().Queued != 1 {
		t.Fatalf("queued = %d, want 1", sim.Stats().Queued)
	}

	sim.Stop()
	if sim.Running() {
		t.Error("Running after Stop")
	}
	if sim.Stats().Queued != 0 {
		t.Error("Stop kept pending requests")
	}
	if sim.Tick(now + 5*time.Second) {
		t.Error("Tick ran after Stop")
	}
	if sim.store.Len() != 1 {
		t.Errorf("nodes = %d, queued request materialized after Stop", sim.store.Len())
	}

	sim.Start(1000, 1000, now)
	if !sim.Running() || sim.store.Len() != 1 || sim.Stats().Spawned != 1 {
		t.Errorf("restart: running=%v nodes=%d", sim.Running(), sim.store.Len())
	}
}

func TestStartWhileRunningOnlyResizes(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 3)
	sim.materialize(0, 0)
	pos := sim.store.Node(1).Pos

	sim.Start(400, 300, time.Second)
	if sim.store.Len() != 2 {
		t.Errorf("restart reset the graph: %d nodes", sim.store.Len())
	}
	if vp := sim.Viewport(); vp.Width != 400 || vp.Height != 300 {
		t.Errorf("viewport = %+v", vp)
	}
	if sim.store.Node(1).Pos != pos {
		t.Error("resize moved nodes")
	}
}

func TestTickSkipped(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	if sim.Tick(frame) {
		t.Error("Tick before Start should be skipped")
	}
	sim.Start(0, 0, 0)
	if sim.Tick(frame) {
		t.Error("Tick with empty viewport should be skipped")
	}
	sim.Resize(100, 100)
	if !sim.Tick(2 * frame) {
		t.Error("Tick after resize should run")
	}
	if sim.Stats().Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", sim.Stats().Ticks)
	}
}

func TestSetConfigRecolors(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 3)
	sim.materialize(0, 0)
	sim.materialize(1, 0)

	cfg := sim.Config()
	cfg.NodeColor = "#ff0000"
	sim.SetConfig(cfg)
	red := Color{1, 0, 0, 1}
	for _, n := range sim.store.Nodes() {
		if n.Color != red {
			t.Errorf("node %d color = %v, want red", n.ID, n.Color)
		}
	}
	sim.materialize(2, 0)
	if c := sim.store.Node(3).Color; c != red {
		t.Errorf("new node color = %v, want red", c)
	}
}

func TestSetConfigSameColorKeepsNodes(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 3)
	blue := Color{0, 0, 1, 1}
	sim.store.Node(0).Color = blue

	cfg := sim.Config()
	cfg.MaxNodes = 50
	sim.SetConfig(cfg)
	if c := sim.store.Node(0).Color; c != blue {
		t.Errorf("color = %v, unchanged node colour should not recolour", c)
	}
	if sim.Config().MaxNodes != 50 {
		t.Error("SetConfig did not apply")
	}
}

func TestSetConfigBeforeStart(t *testing.T) {
	sim := NewSimulation(DefaultConfig())
	cfg := DefaultConfig()
	cfg.NodeColor = "#00ff00"
	sim.SetConfig(cfg)
	sim.Start(100, 100, 0)
	if c := sim.store.Node(0).Color; c != (Color{0, 1, 0, 1}) {
		t.Errorf("seed color = %v, want green", c)
	}
}

func TestInvalidColorFallsBackToGrey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeColor = "chartreuse-ish"
	sim := newStartedSim(cfg, 1)
	if c := sim.store.Node(0).Color; c != defaultGrey {
		t.Errorf("color = %v, want default grey", c)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newStartedSim(DefaultConfig(), 99)
	b := newStartedSim(DefaultConfig(), 99)
	runFor(a, 0, 10*time.Second)
	runFor(b, 0, 10*time.Second)
	na, nb := a.store.Nodes(), b.store.Nodes()
	if len(na) != len(nb) {
		t.Fatalf("node counts differ: %d vs %d", len(na), len(nb))
	}
	for i := range na {
		if na[i].Pos != nb[i].Pos {
			t.Errorf("node %d diverged: %v vs %v", i, na[i].Pos, nb[i].Pos)
		}
	}
}

func TestStats(t *testing.T) {
	sim := newStartedSim(DefaultConfig(), 5)
	if st := sim.Stats(); st.Nodes != 1 || st.MeanDegree != 0 || st.SpeedStd != 0 {
		t.Errorf("single node stats = %+v", st)
	}
	for i := 1; i <= 1200; i++ {
		sim.Tick(time.Duration(i) * frame)
	}
	st := sim.Stats()
	if st.Nodes != sim.store.Len() || st.Edges != sim.store.EdgeCount() {
		t.Errorf("stats = %+v", st)
	}
	if want := 2 * float64(st.Edges) / float64(st.Nodes); !approx(st.MeanDegree, want, 1e-9) {
		t.Errorf("MeanDegree = %v, want %v", st.MeanDegree, want)
	}
	if st.Spawned != st.Nodes {
		t.Errorf("Spawned = %d, want %d", st.Spawned, st.Nodes)
	}
	if st.MeanSpeed < 0 || st.MeanSpeed > 0.24+1e-9 {
		t.Errorf("MeanSpeed = %v", st.MeanSpeed)
	}
	if st.Ticks != 1200 {
		t.Errorf("Ticks = %d, want 1200", st.Ticks)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	sim := NewSimulation(DefaultConfig())
	sim.SetSeed(8)
	sim.SetMetrics(m)
	sim.Tick(frame)
	if got := testutil.ToFloat64(m.TicksSkipped); got != 1 {
		t.Errorf("ticks skipped = %v, want 1", got)
	}

	sim.Start(800, 600, 0)
	runFor(sim, 0, 5*time.Second)

	st := sim.Stats()
	if got := testutil.ToFloat64(m.NodesTotal); got != float64(st.Nodes) {
		t.Errorf("nodes gauge = %v, want %d", got, st.Nodes)
	}
	if got := testutil.ToFloat64(m.EdgesTotal); got != float64(st.Edges) {
		t.Errorf("edges gauge = %v, want %d", got, st.Edges)
	}
	if got := testutil.ToFloat64(m.QueueDepth); got != float64(st.Queued) {
		t.Errorf("queue gauge = %v, want %d", got, st.Queued)
	}
	if got := testutil.ToFloat64(m.NodesSpawned); got != float64(st.Spawned) {
		t.Errorf("spawned counter = %v, want %d", got, st.Spawned)
	}
	if n := testutil.CollectAndCount(m.TickDuration); n != 1 {
		t.Errorf("tick histogram series = %d, want 1", n)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 7 {
		t.Errorf("registered series = %d (err %v), want 7", n, err)
	}
}

func TestGrowthDroppedMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	cfg := DefaultConfig()
	cfg.NodeGrowthRate = 10 // 100ms interval against a 1.2s delay
	sim := newStartedSim(cfg, 2)
	sim.SetMetrics(m)
	runFor(sim, 0, time.Second)

	if got := testutil.ToFloat64(m.GrowthDropped); got == 0 {
		t.Error("expected dropped growth requests")
	}
	if got := float64(sim.Stats().Dropped); testutil.ToFloat64(m.GrowthDropped) != got {
		t.Errorf("dropped counter %v != stats %v", testutil.ToFloat64(m.GrowthDropped), got)
	}
	if q := sim.Stats().Queued; q != maxQueueDepth {
		t.Errorf("queued = %d, want %d", q, maxQueueDepth)
	}
}

func TestTinyGrowthRateKeepsSingleNode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NodeGrowthRate = 1e-11
	sim := newStartedSim(cfg, 4)
	runFor(sim, 0, 5*time.Second)
	if st := sim.Stats(); st.Nodes != 1 || st.Enqueued != 0 {
		t.Errorf("nodes=%d enqueued=%d, want 1 and 0", st.Nodes, st.Enqueued)
	}
}

func TestZeroMaxNodesStaysEmpty(t *testing.T) {
	for _, limit := range []int{0, -3} {
		cfg := DefaultConfig()
		cfg.MaxNodes = limit
		sim := newStartedSim(cfg, 5)
		if !sim.Running() {
			t.Fatalf("MaxNodes=%d: simulation not running after Start", limit)
		}
		if n := sim.store.Len(); n != 0 {
			t.Fatalf("MaxNodes=%d: Start seeded %d nodes", limit, n)
		}
		if sim.Tick(100 * time.Millisecond) {
			t.Errorf("MaxNodes=%d: Tick ran on an empty graph", limit)
		}
		if st := sim.Stats(); st.Nodes != 0 || st.Spawned != 0 {
			t.Errorf("MaxNodes=%d: stats %+v, want no nodes", limit, st)
		}
	}
}
