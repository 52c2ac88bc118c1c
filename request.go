package mandelzoom

import (
	"fmt"
	"math/big"
)

// CoordPrec is the mantissa width, in bits, used for coordinate arithmetic.
// 200 bits is roughly 60 decimal digits, comfortably past the depth where
// perturbation takes over from the fixed-width kernels.
const CoordPrec = 200

// Interior is the reserved sentinel for pixels that never escape within the
// iteration cap. It is negative and therefore never a valid smooth iteration
// value.
const Interior = -1.0

// Request is an immutable snapshot of one compute pass: region bounds in the
// complex plane, pixel grid dimensions and the iteration cap.
type Request struct {
	Xmin, Xmax *big.Float
	Ymin, Ymax *big.Float

	Width, Height int
	MaxIter       int
}

// NewRequest builds a Request from decimal-string bounds. Strings preserve
// precision across the call boundary; parsing happens at CoordPrec bits so a
// region narrower than float64 can resolve is not truncated before the kernel
// even begins.
func NewRequest(xmin, xmax, ymin, ymax string, width, height, maxIter int) (Request, error) {
	req := Request{Width: width, Height: height, MaxIter: maxIter}
	var err error
	if req.Xmin, err = ParseCoord(xmin); err != nil {
		return Request{}, fmt.Errorf("xmin: %w", err)
	}
	if req.Xmax, err = ParseCoord(xmax); err != nil {
		return Request{}, fmt.Errorf("xmax: %w", err)
	}
	if req.Ymin, err = ParseCoord(ymin); err != nil {
		return Request{}, fmt.Errorf("ymin: %w", err)
	}
	if req.Ymax, err = ParseCoord(ymax); err != nil {
		return Request{}, fmt.Errorf("ymax: %w", err)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ParseCoord parses a decimal coordinate string at CoordPrec bits.
func ParseCoord(s string) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 10, CoordPrec, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("parse coordinate %q: %w", s, err)
	}
	return f, nil
}

// Validate reports whether the request describes a well-formed region. A
// request that fails validation is a programming error in bounds derivation;
// kernels are never invoked with one.
func (r Request) Validate() error {
	if r.Xmin == nil || r.Xmax == nil || r.Ymin == nil || r.Ymax == nil {
		return fmt.Errorf("invalid region: nil bound")
	}
	if r.Xmin.Cmp(r.Xmax) >= 0 {
		return fmt.Errorf("invalid region: xmin >= xmax")
	}
	if r.Ymin.Cmp(r.Ymax) >= 0 {
		return fmt.Errorf("invalid region: ymin >= ymax")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid region: non-positive grid %dx%d", r.Width, r.Height)
	}
	if r.MaxIter <= 0 {
		return fmt.Errorf("invalid region: non-positive iteration cap %d", r.MaxIter)
	}
	return nil
}

// spanX returns xmax-xmin at CoordPrec.
func (r Request) spanX() *big.Float {
	return new(big.Float).SetPrec(CoordPrec).Sub(r.Xmax, r.Xmin)
}

func (r Request) spanY() *big.Float {
	return new(big.Float).SetPrec(CoordPrec).Sub(r.Ymax, r.Ymin)
}

// pixelStep returns the per-pixel world step for both axes at CoordPrec.
func (r Request) pixelStep() (dx, dy *big.Float) {
	dx = r.spanX()
	dx.Quo(dx, new(big.Float).SetPrec(CoordPrec).SetInt64(int64(r.Width)))
	dy = r.spanY()
	dy.Quo(dy, new(big.Float).SetPrec(CoordPrec).SetInt64(int64(r.Height)))
	return dx, dy
}

// center returns the midpoint of the region at CoordPrec.
func (r Request) center() (cx, cy *big.Float) {
	half := new(big.Float).SetPrec(CoordPrec).SetFloat64(0.5)
	cx = new(big.Float).SetPrec(CoordPrec).Add(r.Xmin, r.Xmax)
	cx.Mul(cx, half)
	cy = new(big.Float).SetPrec(CoordPrec).Add(r.Ymin, r.Ymax)
	cy.Mul(cy, half)
	return cx, cy
}

// Result is a dense row-major buffer of smooth iteration values, one per
// pixel. Row 0 corresponds to Ymin (bottom-to-top).
type Result struct {
	Width, Height int
	Values        []float64
}

func newResult(width, height int) *Result {
	return &Result{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the value for pixel column x of row y (row 0 = ymin).
func (r *Result) At(x, y int) float64 {
	return r.Values[y*r.Width+x]
}

// EscapedFraction reports the share of pixels that escaped. Useful for
// diagnostics and tests.
func (r *Result) EscapedFraction() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	n := 0
	for _, v := range r.Values {
		if v >= 0 {
			n++
		}
	}
	return float64(n) / float64(len(r.Values))
}
