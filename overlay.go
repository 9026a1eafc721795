package gesture

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often, in seconds, the overlay text is rebuilt.
const overlayRefresh = 0.5

// DebugOverlay draws a surface's recognizer state, viewport and frame rate
// in the top-left corner of the screen.
type DebugOverlay struct {
	surface *Surface
	img     *ebiten.Image
	elapsed float64
	text    string
}

// NewDebugOverlay creates an overlay for s. It allocates its backing image
// lazily on the first Draw.
func NewDebugOverlay(s *Surface) *DebugOverlay {
	return &DebugOverlay{surface: s, elapsed: overlayRefresh}
}

// Update advances the refresh timer by dt seconds and rebuilds the text
// every half second.
func (o *DebugOverlay) Update(dt float64) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0
	vp := o.surface.Viewport()
	o.text = overlayText(o.surface.State(), vp.Offset, vp.Zoom, ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw renders the overlay onto screen.
func (o *DebugOverlay) Draw(screen *ebiten.Image) {
	if o.img == nil {
		// Enough for four lines of debug font.
		o.img = ebiten.NewImage(240, 64)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}

func overlayText(st TouchState, offset Vec2, zoom, fps, tps float64) string {
	return fmt.Sprintf("%s\noffset: (%.0f, %.0f)\nzoom: %.2f\nFPS: %.1f TPS: %.1f",
		st, offset.X, offset.Y, zoom, fps, tps)
}
