package mandelzoom

import (
	"math"
	"math/big"
)

// dd is an unevaluated sum hi+lo of two float64 values (double-double).
// |lo| <= ulp(hi)/2, giving roughly 106 effective mantissa bits; the extended
// kernel relies on at least 64.
type dd struct {
	hi, lo float64
}

func ddFromBig(f *big.Float) dd {
	hi, _ := f.Float64()
	if math.IsInf(hi, 0) || hi == 0 && f.Sign() == 0 {
		return dd{hi: hi}
	}
	rest := new(big.Float).SetPrec(f.Prec()).Sub(f, new(big.Float).SetFloat64(hi))
	lo, _ := rest.Float64()
	return dd{hi: hi, lo: lo}
}

// twoSum is the Knuth error-free transformation: s+e == a+b exactly.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

// twoProd uses FMA to recover the rounding error of a*b exactly.
func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return p, e
}

// renorm collapses a sum and its error term back into canonical dd form.
func renorm(s, e float64) dd {
	hi := s + e
	lo := e - (hi - s)
	return dd{hi: hi, lo: lo}
}

func (a dd) add(b dd) dd {
	s, e := twoSum(a.hi, b.hi)
	e += a.lo + b.lo
	return renorm(s, e)
}

func (a dd) sub(b dd) dd {
	return a.add(dd{hi: -b.hi, lo: -b.lo})
}

func (a dd) mul(b dd) dd {
	p, e := twoProd(a.hi, b.hi)
	e += a.hi*b.lo + a.lo*b.hi
	return renorm(p, e)
}

func (a dd) sqr() dd {
	p, e := twoProd(a.hi, a.hi)
	e += 2 * a.hi * a.lo
	return renorm(p, e)
}

func (a dd) mulFloat(b float64) dd {
	p, e := twoProd(a.hi, b)
	e += a.lo * b
	return renorm(p, e)
}

func (a dd) float() float64 { return a.hi + a.lo }

// computeExtended evaluates the recurrence in double-double arithmetic,
// covering regions too narrow for float64 but wider than the quad threshold.
func computeExtended(req Request, res *Result) error {
	dxB, dyB := req.pixelStep()
	xmin := ddFromBig(req.Xmin)
	ymin := ddFromBig(req.Ymin)
	dx := ddFromBig(dxB)
	dy := ddFromBig(dyB)

	return forEachRow(req.Height, func(py int) error {
		ci := ymin.add(dy.mulFloat(float64(py)))
		row := res.Values[py*req.Width : (py+1)*req.Width]
		for px := range row {
			cr := xmin.add(dx.mulFloat(float64(px)))
			row[px] = iterDD(cr, ci, req.MaxIter)
		}
		return nil
	})
}

func iterDD(cr, ci dd, maxIter int) float64 {
	// The bulb tests only classify c, not z; float64 resolution is enough.
	if inMainBulbs(cr.float(), ci.float()) {
		return Interior
	}
	var zr, zi dd
	for n := 0; n < maxIter; n++ {
		zr2 := zr.sqr()
		zi2 := zi.sqr()
		t := zr.mul(zi).mulFloat(2)
		zr = zr2.sub(zi2).add(cr)
		zi = t.add(ci)
		// The escape test needs no extra precision.
		modSq := zr.hi*zr.hi + zi.hi*zi.hi
		if modSq > bailoutSq {
			return smoothEscape(n, modSq, maxIter)
		}
	}
	return Interior
}
