package constellation

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often the overlay text is rebuilt, in seconds.
const overlayRefresh = 0.5

// statsOverlay draws FPS, TPS and graph size in the top-left corner. The
// text is refreshed about twice a second.
type statsOverlay struct {
	img     *ebiten.Image
	text    string
	elapsed float64
	dirty   bool
}

func newStatsOverlay() *statsOverlay {
	return &statsOverlay{elapsed: overlayRefresh}
}

// update accumulates dt and rebuilds the text when the refresh period passed.
func (o *statsOverlay) update(dt float64, st Stats) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0
	o.text = formatOverlay(ebiten.ActualFPS(), ebiten.ActualTPS(), st)
	o.dirty = true
}

func formatOverlay(fps, tps float64, st Stats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nNodes: %d\nEdges: %d", fps, tps, st.Nodes, st.Edges)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	if o.img == nil {
		// 120x64 fits four short lines of the debug font.
		o.img = ebiten.NewImage(120, 64)
	}
	if o.dirty {
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
		o.dirty = false
	}
	screen.DrawImage(o.img, nil)
}
