package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/view"
)

func TestImageFlipsRows(t *testing.T) {
	// Engine row 0 is the bottom of the plane; image row 0 is the top.
	f := &engine.Frame{
		Result: &mandelzoom.Result{
			Width:  2,
			Height: 2,
			Values: []float64{
				mandelzoom.Interior, 5, // bottom row
				5, mandelzoom.Interior, // top row
			},
		},
		// Put the escaped value exactly on the display minimum so it maps
		// onto the first palette stop, which is distinguishably non-black.
		MinVal: math.Log(math.Log(5+2) + 1),
		MaxVal: math.Log(math.Log(5+2)+1) + 1,
	}
	img := Image(f, palette.New())

	if got := img.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("image bounds = %v, want 2x2", got)
	}
	black := color.RGBA{A: 255}
	escaped := color.RGBA{R: 0x00, G: 0x04, B: 0x28, A: 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, escaped}, // top row of the image = engine row 1
		{1, 0, black},
		{0, 1, black}, // bottom row of the image = engine row 0
		{1, 1, escaped},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPlacementIdentity(t *testing.T) {
	snap := view.NewState().Snapshot()
	scale, u0, v0 := Placement(snap, snap, 4.0/3)
	if math.Abs(scale-1) > 1e-12 || math.Abs(u0) > 1e-12 || math.Abs(v0) > 1e-12 {
		t.Errorf("identity placement = (%v, %v, %v), want (1, 0, 0)", scale, u0, v0)
	}
}

func TestPlacementZoomIn(t *testing.T) {
	const aspect = 4.0 / 3
	frame := view.NewState().Snapshot()

	live := view.NewState()
	live.ZoomAt(0, 0, aspect, 2) // center anchored, so only the extent halves

	scale, u0, v0 := Placement(frame, live.Snapshot(), aspect)
	if math.Abs(scale-0.5) > 1e-12 {
		t.Errorf("scale = %v, want 0.5", scale)
	}
	if math.Abs(u0-0.25) > 1e-12 || math.Abs(v0-0.25) > 1e-12 {
		t.Errorf("offset = (%v, %v), want (0.25, 0.25)", u0, v0)
	}
}

func TestPlacementPan(t *testing.T) {
	const aspect = 1.5
	frame := view.NewState().Snapshot()

	right := view.NewState()
	right.Pan(0.5, 0, aspect) // a quarter viewport to the right
	scale, u0, v0 := Placement(frame, right.Snapshot(), aspect)
	if math.Abs(scale-1) > 1e-12 || math.Abs(u0-0.25) > 1e-12 || math.Abs(v0) > 1e-12 {
		t.Errorf("pan right placement = (%v, %v, %v), want (1, 0.25, 0)", scale, u0, v0)
	}

	up := view.NewState()
	up.Pan(0, 0.5, aspect) // up in the plane is toward smaller v
	_, u0, v0 = Placement(frame, up.Snapshot(), aspect)
	if math.Abs(u0) > 1e-12 || math.Abs(v0+0.25) > 1e-12 {
		t.Errorf("pan up placement offset = (%v, %v), want (0, -0.25)", u0, v0)
	}
}

func TestReprojectIdentity(t *testing.T) {
	snap := view.NewState().Snapshot()
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}

	dst := Reproject(src, snap, snap)
	if dst.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", dst.Bounds())
	}
	// Away from the border the identity transform must reproduce pixels.
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			if got, want := dst.RGBAAt(x, y), src.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestReprojectZoomOutFillsBlack(t *testing.T) {
	frame := view.NewState().Snapshot()
	live := view.NewState()
	live.ZoomAt(0, 0, 1, 0.5) // zoom out: the frame covers only the middle

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xFF // solid white
	}

	dst := Reproject(src, frame, live.Snapshot())
	black := color.RGBA{A: 255}
	if got := dst.RGBAAt(0, 0); got != black {
		t.Errorf("uncovered corner = %v, want black", got)
	}
	if got := dst.RGBAAt(7, 7); got != black {
		t.Errorf("uncovered corner = %v, want black", got)
	}
	if got := dst.RGBAAt(4, 4); got.R < 200 {
		t.Errorf("covered center = %v, want white-ish", got)
	}
}
