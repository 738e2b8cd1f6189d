package constellation

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene hosts a Simulation inside an Ebitengine game loop. It implements
// ebiten.Game: Update ticks the simulation, Draw renders it and Layout
// forwards surface resizes.
type Scene struct {
	sim     *Simulation
	clock   Clock
	surface *EbitenSurface

	width, height int
	startWanted   bool
	stopped       bool
	debug         bool

	overlay *statsOverlay

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScene creates a scene around a new Simulation configured with cfg.
func NewScene(cfg Config) *Scene {
	return &Scene{
		sim:           NewSimulation(cfg),
		clock:         NewSystemClock(),
		surface:       NewEbitenSurface(),
		ScreenshotDir: "screenshots",
	}
}

// Simulation returns the hosted simulation.
func (s *Scene) Simulation() *Simulation {
	return s.sim
}

// SetClock replaces the time source. Use a ManualClock for scripted runs.
func (s *Scene) SetClock(c Clock) {
	s.clock = c
}

// SetDebugMode enables or disables per-tick timing output on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// ShowStats toggles the FPS and graph-size overlay.
func (s *Scene) ShowStats(enabled bool) {
	if !enabled {
		s.overlay = nil
		return
	}
	if s.overlay == nil {
		s.overlay = newStatsOverlay()
	}
}

// Start requests the animation to begin. The first node is placed as soon as
// the surface reports a non-zero size.
func (s *Scene) Start() {
	s.startWanted = true
	s.stopped = false
}

// Stop ends the animation. Pending growth requests are discarded and the
// next Update returns ebiten.Termination.
func (s *Scene) Stop() {
	s.stopped = true
	s.startWanted = false
	s.sim.Stop()
}

// Update advances the simulation by one tick. Ticks are skipped while the
// surface has no size.
func (s *Scene) Update() error {
	if s.stopped {
		return ebiten.Termination
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
		if s.stopped {
			return ebiten.Termination
		}
	}
	if s.width <= 0 || s.height <= 0 {
		return nil
	}

	now := s.clock.Now()
	if s.startWanted && !s.sim.Running() {
		s.sim.Start(float64(s.width), float64(s.height), now)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	ticked := s.sim.Tick(now)
	if s.debug && ticked {
		s.debugLog(debugStats{tickTime: time.Since(t0), stats: s.sim.Stats()})
	}
	if s.overlay != nil {
		s.overlay.update(1/float64(ebiten.TPS()), s.sim.Stats())
	}
	return nil
}

// Draw renders the simulation onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.surface.SetTarget(screen)
	s.sim.Render(s.surface)
	if s.overlay != nil {
		s.overlay.draw(screen)
	}
	s.flushScreenshots(screen)
}

// Layout reports the outside size as the logical screen size and forwards
// changes to the simulation viewport.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.width, s.height = outsideWidth, outsideHeight
		s.sim.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int
	Resizable bool
	ShowFPS   bool
}

// Run opens a window, starts scene and blocks until the window closes or
// the scene is stopped.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.ShowStats(true)
	}
	scene.Start()
	return ebiten.RunGame(scene)
}
