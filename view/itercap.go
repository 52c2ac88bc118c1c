package view

import "math/big"

// The iteration cap follows zoom as a monotone staircase: deeper views need
// more iterations to separate boundary filaments, at the price of compute
// time. Thresholds are tuned for the default palette.
var iterCaps = []struct {
	below float64
	iter  int
}{
	{10, 512},
	{100, 1024},
	{1000, 2048},
	{1e4, 4096},
	{1e5, 8192},
	{1e12, 16384},
	{1e15, 32768},
	{1e18, 65536},
	{1e21, 131072},
	{1e24, 262144},
	{1e27, 524288},
	{1e30, 1048576},
}

const maxIterCap = 2097152

// CapForZoom maps a zoom factor to the iteration cap. Deterministic and
// monotonically non-decreasing in zoom; zooms beyond float64 range saturate
// into the top bucket.
func CapForZoom(zoom *big.Float) int {
	z, _ := zoom.Float64() // +Inf past float64 range, which lands in the top bucket
	if z <= 0 {
		return iterCaps[0].iter
	}
	for _, c := range iterCaps {
		if z < c.below {
			return c.iter
		}
	}
	return maxIterCap
}
