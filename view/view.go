// Package view models the viewport in arbitrary precision: center and zoom
// are big.Float values so that pan/zoom composition never loses the bits that
// deep zooms depend on. Conversion to float64 happens only at kernel or
// display boundaries, never for state mutation.
//
// A State carries no lock of its own; it is owned by one component (the
// engine scheduler) and all access goes through that owner's mutex.
package view

import (
	"fmt"
	"math/big"
)

// Prec is the mantissa width for view arithmetic: ~60 decimal digits.
const Prec = 200

// State is the mutable view: center, zoom and iteration cap. The visible
// region is viewH = 1/zoom plane units tall and aspect/zoom wide.
type State struct {
	cx, cy  *big.Float
	zoom    *big.Float
	maxIter int
}

// NewState returns the default whole-set view.
func NewState() *State {
	s := &State{
		cx:   newF().SetFloat64(-0.5),
		cy:   newF(),
		zoom: newF().SetFloat64(0.4),
	}
	s.maxIter = CapForZoom(s.zoom)
	return s
}

func newF() *big.Float { return new(big.Float).SetPrec(Prec) }

// SetCenter replaces the center from decimal strings.
func (s *State) SetCenter(x, y string) error {
	cx, err := parse(x)
	if err != nil {
		return err
	}
	cy, err := parse(y)
	if err != nil {
		return err
	}
	s.cx, s.cy = cx, cy
	return nil
}

// SetZoom replaces the zoom from a decimal string. Non-positive zoom is
// rejected.
func (s *State) SetZoom(z string) error {
	zoom, err := parse(z)
	if err != nil {
		return err
	}
	if zoom.Sign() <= 0 {
		return fmt.Errorf("zoom must be positive, got %s", z)
	}
	s.zoom = zoom
	s.maxIter = CapForZoom(s.zoom)
	return nil
}

// SetMaxIter overrides the iteration cap. Non-positive values are ignored.
func (s *State) SetMaxIter(n int) {
	if n > 0 {
		s.maxIter = n
	}
}

func (s *State) MaxIter() int { return s.maxIter }

func parse(v string) (*big.Float, error) {
	f, _, err := big.ParseFloat(v, 10, Prec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", v, err)
	}
	return f, nil
}

// Repair restores the invariants zoom > 0 and maxIter > 0 after an arbitrary
// mutation, so a kernel never observes a degenerate view.
func (s *State) Repair() {
	if s.zoom == nil || s.zoom.Sign() <= 0 {
		s.zoom = newF().SetInt64(1)
	}
	if s.cx == nil {
		s.cx = newF()
	}
	if s.cy == nil {
		s.cy = newF()
	}
	if s.maxIter <= 0 {
		s.maxIter = CapForZoom(s.zoom)
	}
}

// viewSize returns the world width and height of the viewport.
func viewSize(zoom *big.Float, aspect float64) (w, h *big.Float) {
	h = newF().Quo(newF().SetInt64(1), zoom)
	w = newF().Quo(newF().SetFloat64(aspect), zoom)
	return w, h
}

// NdcToWorld maps normalized device coordinates (x right, y up, both in
// [-1,1]) to plane coordinates at the current view.
func (s *State) NdcToWorld(nx, ny, aspect float64) (x, y *big.Float) {
	w, h := viewSize(s.zoom, aspect)
	x = newF().Mul(w, newF().SetFloat64(nx/2))
	x.Add(x, s.cx)
	y = newF().Mul(h, newF().SetFloat64(ny/2))
	y.Add(y, s.cy)
	return x, y
}

// WorldToNdc maps plane coordinates to normalized device coordinates at the
// current view. The result is float64; it is only meaningful for points near
// the viewport, where the offsets are small.
func (s *State) WorldToNdc(x, y *big.Float, aspect float64) (nx, ny float64) {
	w, h := viewSize(s.zoom, aspect)
	dx := newF().Sub(x, s.cx)
	dx.Quo(dx, w)
	dy := newF().Sub(y, s.cy)
	dy.Quo(dy, h)
	fx, _ := dx.Float64()
	fy, _ := dy.Float64()
	return 2 * fx, 2 * fy
}

// ZoomAt scales the zoom by factor, anchored at the cursor: the world point
// under (nx, ny) stays under it after the zoom. Factors <= 0 are ignored.
// The iteration cap follows the zoom staircase.
func (s *State) ZoomAt(nx, ny, aspect, factor float64) {
	if factor <= 0 {
		return
	}
	wx, wy := s.NdcToWorld(nx, ny, aspect)
	s.zoom.Mul(s.zoom, newF().SetFloat64(factor))

	w, h := viewSize(s.zoom, aspect)
	s.cx = newF().Mul(w, newF().SetFloat64(nx/2))
	s.cx.Sub(wx, s.cx)
	s.cy = newF().Mul(h, newF().SetFloat64(ny/2))
	s.cy.Sub(wy, s.cy)

	s.maxIter = CapForZoom(s.zoom)
}

// CenterOn recenters the view on the world point under (nx, ny).
func (s *State) CenterOn(nx, ny, aspect float64) {
	s.cx, s.cy = s.NdcToWorld(nx, ny, aspect)
}

// Pan shifts the view by an offset given in NDC units.
func (s *State) Pan(dnx, dny, aspect float64) {
	w, h := viewSize(s.zoom, aspect)
	dx := newF().Mul(w, newF().SetFloat64(dnx/2))
	dy := newF().Mul(h, newF().SetFloat64(dny/2))
	s.cx.Add(s.cx, dx)
	s.cy.Add(s.cy, dy)
}

// Snapshot returns an immutable deep copy of the state. Snapshots tag
// compute results so a displayed buffer can always be paired with the exact
// view it was computed for. Callers must not mutate the exposed big.Floats.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CX:      newF().Set(s.cx),
		CY:      newF().Set(s.cy),
		Zoom:    newF().Set(s.zoom),
		MaxIter: s.maxIter,
	}
}

// Snapshot is a value-semantics copy of a State.
type Snapshot struct {
	CX, CY  *big.Float
	Zoom    *big.Float
	MaxIter int
}

// Equal reports whether two snapshots describe the same view.
func (a Snapshot) Equal(b Snapshot) bool {
	return a.MaxIter == b.MaxIter &&
		a.CX.Cmp(b.CX) == 0 &&
		a.CY.Cmp(b.CY) == 0 &&
		a.Zoom.Cmp(b.Zoom) == 0
}

// Bounds derives the viewport rectangle for the given aspect ratio
// (width/height). Guaranteed xmin < xmax and ymin < ymax for zoom > 0.
type Bounds struct {
	Xmin, Xmax, Ymin, Ymax *big.Float
}

func (a Snapshot) Bounds(aspect float64) Bounds {
	w, h := viewSize(a.Zoom, aspect)
	half := newF().SetFloat64(0.5)
	hw := newF().Mul(w, half)
	hh := newF().Mul(h, half)
	return Bounds{
		Xmin: newF().Sub(a.CX, hw),
		Xmax: newF().Add(a.CX, hw),
		Ymin: newF().Sub(a.CY, hh),
		Ymax: newF().Add(a.CY, hh),
	}
}
