package mandelzoom

import (
	"math"
	"math/big"
	"testing"
)

// deepRequest builds a square region of the given decimal span around a
// decimal center, too narrow for float64 bounds to survive a round trip.
func deepRequest(t *testing.T, cx, cy, span string, size, maxIter int) Request {
	t.Helper()
	cxF := mustCoord(t, cx)
	cyF := mustCoord(t, cy)
	half := new(big.Float).SetPrec(CoordPrec).Quo(mustCoord(t, span), new(big.Float).SetInt64(2))
	req := Request{
		Xmin:    new(big.Float).SetPrec(CoordPrec).Sub(cxF, half),
		Xmax:    new(big.Float).SetPrec(CoordPrec).Add(cxF, half),
		Ymin:    new(big.Float).SetPrec(CoordPrec).Sub(cyF, half),
		Ymax:    new(big.Float).SetPrec(CoordPrec).Add(cyF, half),
		Width:   size,
		Height:  size,
		MaxIter: maxIter,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("deepRequest: %v", err)
	}
	return req
}

// Near c = -2+1e-8i the dynamics sit close to the repelling fixed point with
// multiplier 4, so every pixel escapes after a few dozen iterations and the
// escape profile is stable against tiny coordinate rounding. The quad kernel
// evaluates each pixel directly and serves as the reference.
func TestPerturbationMatchesQuadDeepExterior(t *testing.T) {
	req := deepRequest(t, "-2", "1e-8", "1e-15", 20, 2000)

	quad, err := ComputeWithMode(req, ModeQuad)
	if err != nil {
		t.Fatal(err)
	}
	pert, err := ComputeWithMode(req, ModePerturbation)
	if err != nil {
		t.Fatal(err)
	}

	for i := range quad.Values {
		q, p := quad.Values[i], pert.Values[i]
		if q == Interior || p == Interior {
			t.Fatalf("Values[%d]: interior (quad %v, perturbation %v); the whole region escapes", i, q, p)
		}
		if diff := math.Abs(q - p); diff > 1e-3 {
			t.Errorf("Values[%d]: perturbation %v vs quad %v (diff %v)", i, p, q, diff)
		}
	}
}

// A deep window inside the period-3 bulb: the reference orbit converges onto
// the superattracting cycle through zero, which repeatedly trips the
// rebasing criterion, and no pixel ever escapes.
func TestPerturbationDeepInterior(t *testing.T) {
	req := deepRequest(t, "-0.122561", "0.744862", "1e-16", 16, 400)

	for _, mode := range []PrecisionMode{ModeQuad, ModePerturbation} {
		res, err := ComputeWithMode(req, mode)
		if err != nil {
			t.Fatalf("%v: %v", mode, err)
		}
		for i, v := range res.Values {
			if v != Interior {
				t.Fatalf("%v: Values[%d] = %v, want Interior", mode, i, v)
			}
		}
	}
}

func TestNewRefOrbitEscapingCenter(t *testing.T) {
	cx := mustCoord(t, "3")
	cy := mustCoord(t, "0")
	o := newRefOrbit(cx, cy, 100, quadPrec)

	// Z_0 = 0 and Z_1 = 3 are recorded; |Z_1| > 2 stops the orbit, but the
	// escaping iterate itself stays readable for the per-pixel fold.
	if len(o.r) != 2 {
		t.Fatalf("orbit length = %d, want 2", len(o.r))
	}
	if o.r[0] != 0 || o.i[0] != 0 {
		t.Errorf("Z_0 = (%v, %v), want (0, 0)", o.r[0], o.i[0])
	}
	if o.r[1] != 3 || o.i[1] != 0 {
		t.Errorf("Z_1 = (%v, %v), want (3, 0)", o.r[1], o.i[1])
	}
}

func TestNewRefOrbitInteriorCenter(t *testing.T) {
	const maxIter = 50
	o := newRefOrbit(mustCoord(t, "0"), mustCoord(t, "0"), maxIter, quadPrec)
	if len(o.r) != maxIter+1 {
		t.Fatalf("orbit length = %d, want %d", len(o.r), maxIter+1)
	}
	for n := range o.r {
		if o.r[n] != 0 || o.i[n] != 0 {
			t.Fatalf("Z_%d = (%v, %v), want (0, 0) for c = 0", n, o.r[n], o.i[n])
		}
	}
}

// Pixels that outlive an early-escaping reference must fold onto Z_0 and
// keep iterating instead of reading past the orbit.
func TestPerturbationOutlivesReference(t *testing.T) {
	// The center escapes immediately (|c| > 2), so the reference records
	// only Z_0 and Z_1. Pixels toward the left edge survive past that and
	// must fold onto Z_0 to keep going.
	req := deepRequest(t, "2.1", "0", "0.4", 10, 256)
	res, err := ComputeWithMode(req, ModePerturbation)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := ComputeWithMode(req, ModeDouble)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Values {
		p, d := res.Values[i], direct.Values[i]
		if (p == Interior) != (d == Interior) {
			t.Fatalf("Values[%d]: classification differs (perturbation %v, double %v)", i, p, d)
		}
		if p == Interior {
			continue
		}
		if diff := math.Abs(p - d); diff > 1e-6 {
			t.Errorf("Values[%d]: perturbation %v vs double %v (diff %v)", i, p, d, diff)
		}
	}
}

func TestRefPrecFloorsAtQuad(t *testing.T) {
	shallow := mustRequest(t, "-2", "1", "-1", "1", 100, 100, 100)
	if got := refPrec(shallow); got != quadPrec {
		t.Errorf("refPrec(shallow) = %d, want the quad floor %d", got, quadPrec)
	}
	deep := deepRequest(t, "-0.75", "0.1", "1e-40", 100, 100)
	if got := refPrec(deep); got <= quadPrec {
		t.Errorf("refPrec(deep) = %d, want > %d", got, quadPrec)
	}
}
