// Package constellation animates a growing node-link diagram on [Ebitengine].
//
// Starting from a single node, new nodes are spawned over time, linked to a
// random parent and to some nearby nodes, and every node keeps moving under a
// force-directed layout: repulsion, spring attraction along links,
// collisions, a weak pull toward the viewport centre and containment at the
// viewport edges. Nodes and edges fade in as they appear.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := constellation.NewScene(constellation.DefaultConfig())
//	constellation.Run(scene, constellation.RunConfig{
//		Title: "constellation", Width: 1280, Height: 720,
//	})
//
// For full control, embed a [Scene] in your own [ebiten.Game] and forward
// Update, Draw and Layout to it, or drive a [Simulation] directly:
//
//	sim := constellation.NewSimulation(cfg)
//	sim.Start(width, height, clock.Now())
//	// every frame:
//	sim.Tick(clock.Now())
//	sim.Render(surface)
//
// # Configuration
//
// [Config] carries every tunable with documented defaults from
// [DefaultConfig]. [ResolveConfig] and [LoadConfigFile] overlay TOML or YAML
// documents onto the defaults; keys present in the document win.
//
// # Time and randomness
//
// The simulation never reads the wall clock itself. Callers pass the current
// time to [Simulation.Tick]; [SystemClock] and [ManualClock] provide it.
// [Simulation.SetSeed] makes runs reproducible.
//
// [Ebitengine]: https://ebitengine.org
package constellation
