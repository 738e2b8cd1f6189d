package constellation

import (
	"math"
	"time"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// frame is one tick at 60 TPS.
const frame = time.Second / 60

// newStartedSim returns a seeded simulation started in a 1000x1000 viewport
// at time zero.
func newStartedSim(cfg Config, seed uint64) *Simulation {
	sim := NewSimulation(cfg)
	sim.SetSeed(seed)
	sim.Start(1000, 1000, 0)
	return sim
}

// quietConfig disables every random and repulsive force so motion is driven
// only by springs and whatever the test adds.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.RepulsionForce = 0
	cfg.RandomImpulseProbability = 0
	cfg.RandomImpulseIntensity = 0
	cfg.WanderingFactor = 0
	cfg.CenteringForce = 0
	return cfg
}

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	w, h    int
	clears  []Color
	lines   []lineCall
	circles []circleCall
	order   []string
}

type lineCall struct {
	x0, y0, x1, y1, width float64
	color                 Color
	opacity               float64
}

type circleCall struct {
	cx, cy, r float64
	color     Color
	opacity   float64
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Clear(bg Color) {
	s.clears = append(s.clears, bg)
	s.order = append(s.order, "clear")
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color, opacity float64) {
	s.lines = append(s.lines, lineCall{x0, y0, x1, y1, width, c, opacity})
	s.order = append(s.order, "line")
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c Color, opacity float64) {
	s.circles = append(s.circles, circleCall{cx, cy, r, c, opacity})
	s.order = append(s.order, "circle")
}
