package ebitenui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget shows the current FPS and TPS in the top-left corner. The text is
// refreshed every ~0.5 seconds.
type fpsWidget struct {
	img        *ebiten.Image
	lastUpdate float64
	extra      string
}

func newFPSWidget() *fpsWidget {
	// 160x48 is enough for "FPS: 60.0\nTPS: 60.0\n<phase>"
	return &fpsWidget{img: ebiten.NewImage(160, 48), lastUpdate: 0.5}
}

func (w *fpsWidget) update(dt float64, extra string) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 && extra == w.extra {
		return
	}
	w.lastUpdate = 0
	w.extra = extra

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), extra))
}

func (w *fpsWidget) draw(dst *ebiten.Image) {
	dst.DrawImage(w.img, nil)
}
