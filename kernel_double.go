package mandelzoom

// computeDouble evaluates the recurrence directly in float64. Sufficient for
// regions wider than roughly 1e-13 in plane units at typical grid widths.
func computeDouble(req Request, res *Result) error {
	dxB, dyB := req.pixelStep()
	xmin, _ := req.Xmin.Float64()
	ymin, _ := req.Ymin.Float64()
	dx, _ := dxB.Float64()
	dy, _ := dyB.Float64()

	return forEachRow(req.Height, func(py int) error {
		ci := ymin + dy*float64(py)
		row := res.Values[py*req.Width : (py+1)*req.Width]
		for px := range row {
			cr := xmin + dx*float64(px)
			row[px] = iterDouble(cr, ci, req.MaxIter)
		}
		return nil
	})
}

func iterDouble(cr, ci float64, maxIter int) float64 {
	if inMainBulbs(cr, ci) {
		return Interior
	}
	var zr, zi, zr2, zi2 float64
	for n := 0; n < maxIter; n++ {
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2 = zr * zr
		zi2 = zi * zi
		if zr2+zi2 > bailoutSq {
			return smoothEscape(n, zr2+zi2, maxIter)
		}
	}
	return Interior
}
