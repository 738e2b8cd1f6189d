package constellation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is an opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill and the
// vector package.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

// Vec2 is a 2D vector used for positions, velocities and forces. It has the
// layout of gonum's r2.Vec, which does the arithmetic.
type Vec2 r2.Vec

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2(r2.Add(r2.Vec(v), r2.Vec(o))) }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(r2.Sub(r2.Vec(v), r2.Vec(o))) }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2(r2.Scale(s, r2.Vec(v))) }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return r2.Dot(r2.Vec(v), r2.Vec(o)) }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return r2.Norm(r2.Vec(v)) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return r2.Norm(r2.Sub(r2.Vec(o), r2.Vec(v))) }

// polar returns the vector of length r at angle theta (radians).
func polar(theta, r float64) Vec2 {
	return Vec2{math.Cos(theta) * r, math.Sin(theta) * r}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose min/max range. Configuration encodes it as a
// two-element array.
type Range struct {
	Min, Max float64
}

// Lerp interpolates between Min and Max by t.
func (r Range) Lerp(t float64) float64 {
	return lerp(r.Min, r.Max, t)
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// randomAngle returns a uniform angle in [0, 2π).
func randomAngle(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}
