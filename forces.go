package constellation

import "math"

const (
	// absoluteMaxSpeed and absoluteMinSpeed bound the speed after damping.
	absoluteMaxSpeed = 2.0
	absoluteMinSpeed = 0.1
	// boundaryMargin is the band along each viewport edge where nodes are
	// pushed back toward the centre.
	boundaryMargin = 50.0
	// collisionImpulseFactor amplifies collision impulses.
	collisionImpulseFactor = 1.5
	// collisionJitter is the magnitude of the random kick shared by a
	// colliding pair.
	collisionJitter = 0.2
	// finalSpeedFactor scales NodeMovementSpeed into the last speed cap.
	finalSpeedFactor = 0.8
)

// step advances the layout by one frame: pairwise forces, centering,
// integration, boundary containment and the final speed cap.
func (sim *Simulation) step() {
	nodes := sim.store.Nodes()
	if len(nodes) == 0 {
		return
	}
	if cap(sim.forces) < len(nodes) {
		sim.forces = make([]Vec2, len(nodes), len(nodes)*2)
	}
	forces := sim.forces[:len(nodes)]
	clear(forces)

	sim.accumulatePairForces(nodes, forces)
	sim.accumulateCentering(nodes, forces)

	for i := range nodes {
		sim.integrate(&nodes[i], forces[i])
	}
}

// accumulatePairForces visits every unordered pair once and adds repulsion,
// collision and spring forces. Coincident nodes get no pairwise force.
func (sim *Simulation) accumulatePairForces(nodes []Node, forces []Vec2) {
	cfg := &sim.cfg
	for i := 0; i < len(nodes); i++ {
		a := &nodes[i]
		for j := i + 1; j < len(nodes); j++ {
			b := &nodes[j]

			d := b.Pos.Sub(a.Pos)
			dist := d.Len()
			if dist == 0 {
				continue
			}
			n := d.Scale(1 / dist)

			// Hard repulsion inside the minimum spacing.
			minDist := cfg.MinDistanceBetweenNodes + a.Size + b.Size
			if dist < minDist {
				f := n.Scale(-cfg.RepulsionForce * 2 * (1 - dist/minDist))
				forces[i] = forces[i].Add(f)
				forces[j] = forces[j].Sub(f)
			}

			// Collision impulse while overlapping and closing in.
			if dist < a.Size+b.Size {
				closing := b.Vel.Sub(a.Vel).Dot(n)
				if closing < 0 {
					impulse := (1 + cfg.CollisionElasticity) * closing * cfg.CollisionDamping * collisionImpulseFactor
					f := n.Scale(impulse)
					forces[i] = forces[i].Sub(f)
					forces[j] = forces[j].Add(f)

					kick := polar(randomAngle(sim.rng), collisionJitter)
					forces[i] = forces[i].Add(kick)
					forces[j] = forces[j].Sub(kick)
				}
			}

			// Soft repulsion within the repulsion radius.
			if dist < cfg.RepulsionRadius {
				f := n.Scale(-cfg.RepulsionForce * (1 - dist/cfg.RepulsionRadius))
				forces[i] = forces[i].Add(f)
				forces[j] = forces[j].Sub(f)
			}

			// Spring toward the optimal distance for linked pairs.
			if sim.store.Connected(a.ID, b.ID) {
				f := n.Scale(cfg.AttractionForce * (dist - cfg.OptimalDistance) / cfg.OptimalDistance)
				forces[i] = forces[i].Add(f)
				forces[j] = forces[j].Sub(f)
			}
		}
	}
}

// accumulateCentering pulls the whole graph so its centroid drifts toward the
// viewport centre. Every node receives the same force.
func (sim *Simulation) accumulateCentering(nodes []Node, forces []Vec2) {
	var centroid Vec2
	for i := range nodes {
		centroid = centroid.Add(nodes[i].Pos)
	}
	centroid = centroid.Scale(1 / float64(len(nodes)))

	f := sim.viewport.Center().Sub(centroid).Scale(sim.cfg.CenteringForce)
	for i := range forces {
		forces[i] = forces[i].Add(f)
	}
}

// integrate applies the accumulated force to one node and moves it.
func (sim *Simulation) integrate(n *Node, force Vec2) {
	cfg := &sim.cfg
	v := n.Vel.Add(force)

	if sim.rng.Float64() < cfg.RandomImpulseProbability {
		v = v.Add(polar(randomAngle(sim.rng), cfg.RandomImpulseIntensity))
	}
	v = v.Add(polar(randomAngle(sim.rng), cfg.WanderingFactor*0.1))
	v = v.Scale(cfg.VelocityDamping)

	// The floor is tested against the speed before the ceiling applies.
	speed := v.Len()
	if speed > absoluteMaxSpeed {
		v = v.Scale(absoluteMaxSpeed / speed)
	}
	if speed < absoluteMinSpeed && speed > 0 {
		v = v.Scale(absoluteMinSpeed / speed)
	}

	n.Pos = n.Pos.Add(v)
	n.Vel = v

	sim.contain(n)

	// Drift jitter: ±0.025 per axis at the default wandering factor.
	jitter := cfg.WanderingFactor * 0.25
	n.Vel.X += (sim.rng.Float64() - 0.5) * jitter
	n.Vel.Y += (sim.rng.Float64() - 0.5) * jitter

	limit := finalSpeedFactor * cfg.NodeMovementSpeed
	if s := n.Vel.Len(); s > limit {
		if limit <= 0 {
			n.Vel = Vec2{}
		} else {
			n.Vel = n.Vel.Scale(limit / s)
		}
	}
}

// contain pushes nodes inside the boundary band back toward the viewport
// centre and clamps their position so the disc never crosses an edge.
func (sim *Simulation) contain(n *Node) {
	vp := sim.viewport
	center := vp.Center()
	strength := sim.cfg.BoundaryRepulsionForce

	push := func(depth float64) {
		toCenter := center.Sub(n.Pos)
		dist := toCenter.Len()
		if dist == 0 {
			return
		}
		n.Vel = n.Vel.Add(toCenter.Scale(strength * (1 - depth/boundaryMargin) / dist))
	}

	left, right := vp.X, vp.X+vp.Width
	top, bottom := vp.Y, vp.Y+vp.Height

	if d := n.Pos.X - left; d < boundaryMargin {
		push(d)
		n.Pos.X = math.Max(left+n.Size, n.Pos.X)
	}
	if d := right - n.Pos.X; d < boundaryMargin {
		push(d)
		n.Pos.X = math.Min(right-n.Size, n.Pos.X)
	}
	if d := n.Pos.Y - top; d < boundaryMargin {
		push(d)
		n.Pos.Y = math.Max(top+n.Size, n.Pos.Y)
	}
	if d := bottom - n.Pos.Y; d < boundaryMargin {
		push(d)
		n.Pos.Y = math.Min(bottom-n.Size, n.Pos.Y)
	}
}
