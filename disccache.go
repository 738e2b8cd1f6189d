package constellation

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// discPadding is the transparent border around a cached disc image.
const discPadding = 4

// discKey identifies one pre-rendered disc. Sizes are quantized to 1/100 px.
type discKey struct {
	size  int
	color colorRGBA
}

func newDiscKey(size float64, c Color) discKey {
	return discKey{size: quantize(size), color: c.WithAlpha(1).toRGBA()}
}

func quantize(v float64) int {
	return int(math.Round(v * 100))
}

// discImage is an immutable cached disc and the offset from its top-left
// corner to the disc centre.
type discImage struct {
	img    *ebiten.Image
	center float64
}

// discCache memoizes disc images. Entries are never evicted; the key space is
// small because sizes and colours come from a handful of configured values.
type discCache struct {
	entries map[discKey]discImage
	hits    int
	misses  int
}

func newDiscCache() *discCache {
	return &discCache{entries: make(map[discKey]discImage)}
}

// get returns the opaque disc of radius size, rendering it on first use.
// Opacity is applied when the disc is drawn.
func (c *discCache) get(size float64, col Color) discImage {
	key := newDiscKey(size, col)
	if d, ok := c.entries[key]; ok {
		c.hits++
		return d
	}
	c.misses++

	dim := int(math.Ceil(size*2)) + discPadding*2
	img := ebiten.NewImage(dim, dim)
	center := float32(dim) / 2
	vector.DrawFilledCircle(img, center, center, float32(size), col.WithAlpha(1).toRGBA(), true)

	d := discImage{img: img, center: float64(center)}
	c.entries[key] = d
	return d
}

// len returns the number of cached discs.
func (c *discCache) len() int {
	return len(c.entries)
}
