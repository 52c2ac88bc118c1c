package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/view"
)

// wheelZoomStep is the zoom factor per wheel notch.
const wheelZoomStep = 1.1

type game struct {
	sch *engine.Scheduler
	pal *palette.Palette

	w, h int

	tex  *ebiten.Image
	last *engine.Frame
}

func newGame(sch *engine.Scheduler, pal *palette.Palette, w, h int) *game {
	return &game{sch: sch, pal: pal, w: w, h: h}
}

func (g *game) aspect() float64 {
	return float64(g.w) / float64(g.h)
}

// cursorNdc maps the window cursor to normalized device coordinates
// (x right, y up, both in [-1,1]).
func (g *game) cursorNdc() (nx, ny float64) {
	cx, cy := ebiten.CursorPosition()
	nx = 2*float64(cx)/float64(g.w) - 1
	ny = -(2*float64(cy)/float64(g.h) - 1)
	return nx, ny
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		nx, ny := g.cursorNdc()
		factor := math.Pow(wheelZoomStep, wy)
		g.sch.Update(func(st *view.State) {
			st.ZoomAt(nx, ny, g.aspect(), factor)
		})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		nx, ny := g.cursorNdc()
		g.sch.Update(func(st *view.State) {
			st.CenterOn(nx, ny, g.aspect())
		})
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if f := g.sch.Latest(); f != nil && f != g.last {
		g.last = f
		img := render.Image(f, g.pal)
		if g.tex == nil {
			g.tex = ebiten.NewImage(g.w, g.h)
		}
		g.tex.WritePixels(img.Pix)
	}
	if g.last == nil {
		ebitenutil.DebugPrintAt(screen, "computing...", 8, 8)
		return
	}

	// Place the newest frame against the live view, so panning and zooming
	// stay responsive while the next pass is still running.
	scale, u0, v0 := render.Placement(g.last.View, g.sch.View(), g.aspect())
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-u0*float64(g.w), -v0*float64(g.h))
	op.GeoM.Scale(1/scale, 1/scale)
	screen.DrawImage(g.tex, op)

	status := fmt.Sprintf("zoom %s  iter %d  mode %s  pass %.0f ms",
		g.last.View.Zoom.Text('e', 2), g.last.View.MaxIter,
		g.last.Mode, g.last.Elapsed.Seconds()*1000)
	if g.sch.Computing() {
		status += "  [computing]"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}
