// Package render turns published frames into images and places stale frames
// against the live view. The engine makes no assumption about the display
// technology; this package is the reference software consumer used by the
// cmd/ binaries.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math/big"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/view"
)

// Image rasterizes a frame with the given palette. Engine rows run bottom to
// top; image rows run top-down, so rows are flipped here.
func Image(f *engine.Frame, pal *palette.Palette) *image.RGBA {
	res := f.Result
	img := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for py := 0; py < res.Height; py++ {
		iy := res.Height - 1 - py
		for px := 0; px < res.Width; px++ {
			img.SetRGBA(px, iy, pal.Shade(res.At(px, py), f.MinVal, f.MaxVal))
		}
	}
	return img
}

// Placement computes where the live viewport sits inside a frame's texture,
// in texture units. aspect is the viewport width/height ratio shared by the
// frame and the live view.
//
//	scale  – live viewport extent as a fraction of the frame's extent
//	u0, v0 – top-left corner of the live viewport inside the frame texture
//	         (u right, v down, matching top-down images; both in [0,1] when
//	         the live view is fully covered by the frame)
//
// The offsets are small relative values, so converting the big.Float
// arithmetic to float64 at the end loses nothing visible.
func Placement(frame, live view.Snapshot, aspect float64) (scale, u0, v0 float64) {
	rel := new(big.Float).SetPrec(view.Prec).Quo(frame.Zoom, live.Zoom)
	scale, _ = rel.Float64()

	// Offset of the live center from the frame center, normalized by the
	// frame's world width (aspect/zoom) for u and height (1/zoom) for v.
	offX := new(big.Float).SetPrec(view.Prec).Sub(live.CX, frame.CX)
	offX.Mul(offX, frame.Zoom)
	fx, _ := offX.Float64()
	fx /= aspect

	offY := new(big.Float).SetPrec(view.Prec).Sub(live.CY, frame.CY)
	offY.Mul(offY, frame.Zoom)
	fy, _ := offY.Float64()

	u0 = 0.5 + fx - 0.5*scale
	v0 = 0.5 - fy - 0.5*scale // world y up = texture v down
	return scale, u0, v0
}

// Reproject draws a stale frame image as it should appear under the live
// view: scaled and offset so world coordinates line up. Regions the frame
// never covered come out black. src must be the Image() of frame.
func Reproject(src *image.RGBA, frame, live view.Snapshot) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	scale, u0, v0 := Placement(frame, live, w/h)
	if scale <= 0 {
		return dst
	}

	// Source pixel (sx, sy) lands at ((sx - u0*w)/scale, (sy - v0*h)/scale).
	m := f64.Aff3{
		1 / scale, 0, -u0 * w / scale,
		0, 1 / scale, -v0 * h / scale,
	}
	xdraw.ApproxBiLinear.Transform(dst, m, src, src.Bounds(), xdraw.Over, nil)
	return dst
}
