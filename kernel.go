package mandelzoom

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// bailoutSq is the squared bailout radius (radius 2).
const bailoutSq = 4.0

// Compute validates the request, selects the cheapest sufficient precision
// mode and runs the matching kernel.
func Compute(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return ComputeWithMode(req, SelectMode(req.Xmin, req.Xmax, req.Width))
}

// ComputeWithMode runs one kernel pass in an explicitly chosen mode. All
// kernels share the same output contract; forcing a mode is useful for
// diagnostics and cross-checking.
func ComputeWithMode(req Request, mode PrecisionMode) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res := newResult(req.Width, req.Height)
	var err error
	switch mode {
	case ModeDouble:
		err = computeDouble(req, res)
	case ModeExtended:
		err = computeExtended(req, res)
	case ModeQuad:
		err = computeQuad(req, res)
	case ModePerturbation:
		err = computePerturbation(req, res)
	default:
		err = fmt.Errorf("unknown precision mode %d", mode)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// forEachRow runs fn for every pixel row on up to GOMAXPROCS workers. Rows
// are independent, so scheduling order cannot change the result.
func forEachRow(height int, fn func(py int) error) error {
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for py := 0; py < height; py++ {
		py := py
		g.Go(func() error { return fn(py) })
	}
	return g.Wait()
}

// inMainBulbs reports whether c lies in the main cardioid or the period-2
// disc, the two regions cheap to classify without iterating.
func inMainBulbs(cr, ci float64) bool {
	q := (cr-0.25)*(cr-0.25) + ci*ci
	if q*(q+(cr-0.25)) < 0.25*ci*ci {
		return true
	}
	return (cr+1)*(cr+1)+ci*ci < 0.0625
}

// smoothEscape converts an escape at iteration n with squared modulus modSq
// into a continuous iteration value: n + 1 - log(log r / log 2)/log 2,
// clamped into [0, maxIter).
func smoothEscape(n int, modSq float64, maxIter int) float64 {
	logR := 0.5 * math.Log(modSq) // modSq > 4, so logR > log 2 > 0
	v := float64(n) + 1 - math.Log(logR/math.Ln2)/math.Ln2
	if v < 0 {
		return 0
	}
	if cap := float64(maxIter); v >= cap {
		return math.Nextafter(cap, 0)
	}
	return v
}
