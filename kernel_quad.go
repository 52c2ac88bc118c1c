package mandelzoom

import "math/big"

// quadPrec is the mantissa width of the quad kernel, matching the >=112-bit
// contract of a binary128 representation.
const quadPrec = 128

// computeQuad evaluates the recurrence per pixel in 128-bit big.Float.
// Much slower than the fixed-width kernels; selected only for the narrow band
// of zooms between double-double capacity and the perturbation regime, and
// used by tests as the direct-evaluation reference for the perturbation
// kernel.
func computeQuad(req Request, res *Result) error {
	dxB, dyB := req.pixelStep()
	xmin := new(big.Float).SetPrec(quadPrec).Set(req.Xmin)
	ymin := new(big.Float).SetPrec(quadPrec).Set(req.Ymin)
	dx := new(big.Float).SetPrec(quadPrec).Set(dxB)
	dy := new(big.Float).SetPrec(quadPrec).Set(dyB)

	return forEachRow(req.Height, func(py int) error {
		ci := new(big.Float).SetPrec(quadPrec).SetInt64(int64(py))
		ci.Mul(ci, dy)
		ci.Add(ci, ymin)
		cr := new(big.Float).SetPrec(quadPrec)
		pxf := new(big.Float).SetPrec(quadPrec)
		row := res.Values[py*req.Width : (py+1)*req.Width]
		for px := range row {
			pxf.SetInt64(int64(px))
			cr.Mul(pxf, dx)
			cr.Add(cr, xmin)
			row[px] = iterQuad(cr, ci, req.MaxIter)
		}
		return nil
	})
}

func iterQuad(cr, ci *big.Float, maxIter int) float64 {
	crD, _ := cr.Float64()
	ciD, _ := ci.Float64()
	if inMainBulbs(crD, ciD) {
		return Interior
	}

	zr := new(big.Float).SetPrec(quadPrec)
	zi := new(big.Float).SetPrec(quadPrec)
	zr2 := new(big.Float).SetPrec(quadPrec)
	zi2 := new(big.Float).SetPrec(quadPrec)
	t := new(big.Float).SetPrec(quadPrec)
	m := new(big.Float).SetPrec(quadPrec)
	four := new(big.Float).SetPrec(quadPrec).SetInt64(4)

	for n := 0; n < maxIter; n++ {
		// z' = z^2 + c; t must be taken before zr is overwritten.
		t.Mul(zr, zi)
		t.Add(t, t)
		zr.Sub(zr2, zi2)
		zr.Add(zr, cr)
		zi.Add(t, ci)
		zr2.Mul(zr, zr)
		zi2.Mul(zi, zi)
		m.Add(zr2, zi2)
		if m.Cmp(four) > 0 {
			modSq, _ := m.Float64()
			return smoothEscape(n, modSq, maxIter)
		}
	}
	return Interior
}
