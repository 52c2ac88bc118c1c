package view

import (
	"math/big"
	"testing"
)

func TestCapForZoomBuckets(t *testing.T) {
	tests := []struct {
		zoom float64
		want int
	}{
		{0.4, 512},
		{1, 512},
		{9.99, 512},
		{10, 1024},
		{100, 2048},
		{1000, 4096},
		{1e4, 8192},
		{1e5, 16384},
		{1e11, 16384},
		{1e12, 32768},
		{1e15, 65536},
		{1e18, 131072},
		{1e21, 262144},
		{1e24, 524288},
		{1e27, 1048576},
		{1e30, 2097152},
		{1e300, 2097152},
	}
	for _, tt := range tests {
		if got := CapForZoom(big.NewFloat(tt.zoom)); got != tt.want {
			t.Errorf("CapForZoom(%g) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestCapForZoomMonotonic(t *testing.T) {
	z := big.NewFloat(0.001)
	step := big.NewFloat(1.7)
	prev := CapForZoom(z)
	for i := 0; i < 250; i++ {
		z.Mul(z, step)
		got := CapForZoom(z)
		if got < prev {
			t.Fatalf("CapForZoom dropped from %d to %d at zoom %s", prev, got, z.Text('e', 3))
		}
		prev = got
	}
}

func TestCapForZoomBeyondFloat64(t *testing.T) {
	// Zooms past float64 range convert to +Inf and must land in the top
	// bucket, not panic or fall back to the shallow default.
	z, _, err := big.ParseFloat("1e400", 10, Prec, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	if got := CapForZoom(z); got != 2097152 {
		t.Errorf("CapForZoom(1e400) = %d, want 2097152", got)
	}
}

func TestCapForZoomDegenerate(t *testing.T) {
	if got := CapForZoom(big.NewFloat(0)); got != 512 {
		t.Errorf("CapForZoom(0) = %d, want the shallow default 512", got)
	}
	if got := CapForZoom(big.NewFloat(-5)); got != 512 {
		t.Errorf("CapForZoom(-5) = %d, want the shallow default 512", got)
	}
}
