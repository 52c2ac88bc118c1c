package mandelzoom

import "math/big"

// The perturbation kernel computes one reference orbit at full precision for
// the region center, then iterates only the per-pixel delta in float64:
//
//	z_n = Z_n + δ_n,   δ_{n+1} = 2 Z_n δ_n + δ_n² + δc
//
// Rebasing: when the full value becomes smaller than the delta (|z| < |δ|,
// the Zhuoran criterion with ε = 1) the delta has absorbed all significant
// bits and further perturbation steps would be garbage; the pixel is rebased
// by folding the full value into δ and restarting the reference index at
// zero, which is exact because Z_0 = 0. The same fold handles pixels that
// outlive a reference orbit that escaped early.

// refOrbit is the reference orbit Z_0..Z_k rounded to float64 per iteration.
type refOrbit struct {
	r, i []float64
}

// refPrec picks the big.Float precision for the reference orbit: the bits the
// region needs plus a 64-bit guard, never below the quad width.
func refPrec(req Request) uint {
	span := req.spanX()
	if span.Sign() <= 0 {
		return CoordPrec
	}
	need := requiredBits(req.Xmin, req.Xmax, span, req.Width) + 64
	if need < quadPrec {
		need = quadPrec
	}
	return uint(need)
}

// newRefOrbit iterates the center at full precision, recording each Z_n until
// escape or the iteration cap. The escaping iterate itself is recorded so the
// per-pixel loop can always read Z_m for every stored index.
func newRefOrbit(cx, cy *big.Float, maxIter int, prec uint) *refOrbit {
	o := &refOrbit{
		r: make([]float64, 0, maxIter+1),
		i: make([]float64, 0, maxIter+1),
	}

	zr := new(big.Float).SetPrec(prec)
	zi := new(big.Float).SetPrec(prec)
	zr2 := new(big.Float).SetPrec(prec)
	zi2 := new(big.Float).SetPrec(prec)
	t := new(big.Float).SetPrec(prec)
	m := new(big.Float).SetPrec(prec)
	four := new(big.Float).SetPrec(prec).SetInt64(4)

	for n := 0; n <= maxIter; n++ {
		fr, _ := zr.Float64()
		fi, _ := zi.Float64()
		o.r = append(o.r, fr)
		o.i = append(o.i, fi)

		m.Add(zr2, zi2)
		if m.Cmp(four) > 0 {
			break
		}

		t.Mul(zr, zi)
		t.Add(t, t)
		zr.Sub(zr2, zi2)
		zr.Add(zr, cx)
		zi.Add(t, cy)
		zr2.Mul(zr, zr)
		zi2.Mul(zi, zi)
	}
	return o
}

func computePerturbation(req Request, res *Result) error {
	prec := refPrec(req)
	cx, cy := req.center()
	orbit := newRefOrbit(cx, cy, req.MaxIter, prec)
	Logger().Debug("reference orbit computed",
		"len", len(orbit.r), "prec", prec, "maxIter", req.MaxIter)

	dxB, dyB := req.pixelStep()
	dx, _ := dxB.Float64()
	dy, _ := dyB.Float64()
	ccr, _ := cx.Float64()
	cci, _ := cy.Float64()

	halfW := float64(req.Width) / 2
	halfH := float64(req.Height) / 2

	return forEachRow(req.Height, func(py int) error {
		dci := (float64(py) - halfH) * dy
		row := res.Values[py*req.Width : (py+1)*req.Width]
		for px := range row {
			dcr := (float64(px) - halfW) * dx
			row[px] = orbit.iterate(dcr, dci, ccr+dcr, cci+dci, req.MaxIter)
		}
		return nil
	})
}

// iterate runs the delta recurrence for one pixel. cApproxR/cApproxI is c to
// float64 resolution, used only for the bulb membership shortcut.
func (o *refOrbit) iterate(dcr, dci, cApproxR, cApproxI float64, maxIter int) float64 {
	if inMainBulbs(cApproxR, cApproxI) {
		return Interior
	}

	var dzr, dzi float64
	m := 0 // reference index: current z = Z_m + δ
	for n := 0; n < maxIter; n++ {
		if m+1 >= len(o.r) {
			// Reference orbit exhausted; fold into the absolute value and
			// restart against Z_0 = 0.
			dzr += o.r[m]
			dzi += o.i[m]
			m = 0
		}
		zr := o.r[m]
		zi := o.i[m]
		ndzr := 2*(zr*dzr-zi*dzi) + dzr*dzr - dzi*dzi + dcr
		ndzi := 2*(zr*dzi+zi*dzr) + 2*dzr*dzi + dci
		dzr, dzi = ndzr, ndzi
		m++

		fr := o.r[m] + dzr
		fi := o.i[m] + dzi
		modSq := fr*fr + fi*fi
		if modSq > bailoutSq {
			return smoothEscape(n, modSq, maxIter)
		}
		if modSq < dzr*dzr+dzi*dzi {
			// Perturbation breakdown: the delta dominates the full value.
			dzr, dzi = fr, fi
			m = 0
		}
	}
	return Interior
}
