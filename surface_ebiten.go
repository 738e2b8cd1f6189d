package constellation

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface adapts an *ebiten.Image to Surface. Lines go through the
// vector package; discs are drawn from a cache of pre-rendered images.
type EbitenSurface struct {
	image *ebiten.Image
	discs *discCache
}

// NewEbitenSurface creates a surface with an empty disc cache. Call SetTarget
// before drawing.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{discs: newDiscCache()}
}

// SetTarget points the surface at img, usually the screen passed to Draw.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.image = img
}

// Image returns the current target.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// CachedDiscs returns the number of memoized disc images.
func (s *EbitenSurface) CachedDiscs() int {
	return s.discs.len()
}

// Size returns the target size, or 0, 0 without a target.
func (s *EbitenSurface) Size() (int, int) {
	if s.image == nil {
		return 0, 0
	}
	b := s.image.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the target with bg, or transparent black for a zero Color.
func (s *EbitenSurface) Clear(bg Color) {
	if bg.A <= 0 {
		s.image.Clear()
		return
	}
	s.image.Fill(bg.toRGBA())
}

// StrokeLine draws an anti-aliased segment.
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color, opacity float64) {
	if opacity <= 0 {
		return
	}
	vector.StrokeLine(s.image,
		float32(x0), float32(y0), float32(x1), float32(y1),
		float32(width), c.WithAlpha(c.A*opacity).toRGBA(), true)
}

// FillCircle draws a cached disc centred on (cx, cy).
func (s *EbitenSurface) FillCircle(cx, cy, r float64, c Color, opacity float64) {
	if opacity <= 0 || r <= 0 {
		return
	}
	d := s.discs.get(r, c)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(cx-d.center, cy-d.center)
	op.ColorScale.ScaleAlpha(float32(c.A * opacity))
	s.image.DrawImage(d.img, &op)
}
