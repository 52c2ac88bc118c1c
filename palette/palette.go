// Package palette maps smooth iteration values to display colors through a
// precomputed gradient lookup table.
package palette

import (
	"fmt"
	"image/color"
	"math"
)

// lutSize is the resolution of the interpolated gradient.
const lutSize = 2048

// gamma applied to the normalized value before the LUT lookup; lifts the
// mid-tones the same way the reference shader did.
const gamma = 0.8

// ultraStops is the deep-blue-to-ember gradient the explorer ships with.
var ultraStops = []string{
	"#000428", "#000764", "#0A1E5C", "#0C2C8A", "#1852B1", "#2B6FCC", "#397DD1", "#5092DD",
	"#6AA7E5", "#83B9E9", "#9BCBEB", "#B0D7EC", "#C4E1ED", "#D5EAF0", "#E3F0F3", "#F0F9FF",
	"#FFF8DC", "#FFEED5", "#FFE4B5", "#FFDAA0", "#FFD18A", "#FFC570", "#FFB347", "#FFA520",
	"#FF9000", "#FF7D00", "#FF6B00", "#FF5800", "#FF4500", "#FF3200", "#FF2400", "#F51C00",
	"#E60000", "#D80000", "#CC0000", "#B30000", "#990000", "#800020", "#660033", "#570040",
	"#4B0082", "#3D0066", "#2F004F", "#240040", "#1A0033", "#120022", "#0D001A", "#050008",
	"#000000",
}

// Palette is an immutable color lookup table. Safe for concurrent use.
type Palette struct {
	lut []color.RGBA
}

// New builds the default palette.
func New() *Palette {
	p, err := FromStops(ultraStops)
	if err != nil {
		// The built-in stops are constants; a parse failure is a bug.
		panic(err)
	}
	return p
}

// FromStops builds a palette by linearly interpolating the given "#RRGGBB"
// stops across the table.
func FromStops(stops []string) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 stops, got %d", len(stops))
	}
	rgb := make([][3]float64, len(stops))
	for i, s := range stops {
		c, err := parseHex(s)
		if err != nil {
			return nil, err
		}
		rgb[i] = c
	}

	lut := make([]color.RGBA, lutSize)
	for i := range lut {
		t := float64(i) / float64(lutSize-1) * float64(len(rgb)-1)
		k := int(t)
		if k >= len(rgb)-1 {
			k = len(rgb) - 2
		}
		f := t - float64(k)
		a, b := rgb[k], rgb[k+1]
		lut[i] = color.RGBA{
			R: uint8(math.Round((a[0] + (b[0]-a[0])*f) * 255)),
			G: uint8(math.Round((a[1] + (b[1]-a[1])*f) * 255)),
			B: uint8(math.Round((a[2] + (b[2]-a[2])*f) * 255)),
			A: 255,
		}
	}
	return &Palette{lut: lut}, nil
}

func parseHex(s string) ([3]float64, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02X%02X%02X", &r, &g, &b); err != nil {
		return [3]float64{}, fmt.Errorf("palette stop %q: %w", s, err)
	}
	return [3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}

// Shade maps one smooth iteration value to a color given the display range
// from the normalization pass. Interior (sentinel) pixels are black.
func (p *Palette) Shade(v, minVal, maxVal float64) color.RGBA {
	if v < 0 {
		return color.RGBA{A: 255}
	}
	val := math.Log(math.Log(v+2) + 1)
	t := (val - minVal) / (maxVal - minVal)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	t = math.Pow(t, gamma)
	return p.lut[int(t*float64(len(p.lut)-1))]
}
