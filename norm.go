package mandelzoom

import (
	"math"
	"sort"
)

const (
	// normSampleCap bounds how many pixels the stats pass inspects.
	normSampleCap = 100000
	// normPercentile: the display maximum is the 99.7th percentile, so a
	// handful of iteration spikes cannot crush the contrast of the rest.
	normPercentile = 0.997
)

// Normalize computes the dynamic display range for a result: min and the
// 99.7th percentile of log(log(v+2)+1) over escaped pixels. Sampling is
// strided and therefore deterministic for a given buffer. If nothing escaped
// the fixed fallback range (0, 1) is returned. maxVal is always strictly
// greater than minVal.
func Normalize(res *Result) (minVal, maxVal float64) {
	stride := 1
	if len(res.Values) > normSampleCap {
		stride = len(res.Values) / normSampleCap
	}

	vals := make([]float64, 0, normSampleCap)
	for i := 0; i < len(res.Values); i += stride {
		v := res.Values[i]
		if v < 0 {
			continue
		}
		vals = append(vals, math.Log(math.Log(v+2)+1))
	}
	if len(vals) == 0 {
		return 0, 1
	}

	sort.Float64s(vals)
	minVal = vals[0]
	maxVal = vals[int(normPercentile*float64(len(vals)-1))]
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}
