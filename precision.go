package mandelzoom

import (
	"math/big"
	"math/bits"
)

// PrecisionMode is the arithmetic representation used for a compute pass.
// The numeric values are part of the external mode-query contract.
type PrecisionMode int

const (
	// ModeDouble evaluates the recurrence in float64 (52 mantissa bits).
	ModeDouble PrecisionMode = iota
	// ModeExtended evaluates in compensated double-double arithmetic.
	ModeExtended
	// ModeQuad evaluates in 128-bit big.Float.
	ModeQuad
	// ModePerturbation iterates float64 deltas against a high-precision
	// reference orbit.
	ModePerturbation
)

func (m PrecisionMode) String() string {
	switch m {
	case ModeDouble:
		return "double"
	case ModeExtended:
		return "extended"
	case ModeQuad:
		return "quad"
	case ModePerturbation:
		return "perturbation"
	}
	return "unknown"
}

// Mantissa capacity of each fixed-width representation, in bits.
const (
	doubleMantBits   = 52
	extendedMantBits = 64
	quadMantBits     = 112
)

// SelectMode picks the cheapest representation that can still distinguish
// adjacent pixels of the requested region. It is pure, deterministic and
// total: every input, including degenerate bounds, yields a mode. Degenerate
// input selects ModePerturbation, the most conservative repair; Compute still
// rejects such regions before dispatch.
func SelectMode(xmin, xmax *big.Float, width int) PrecisionMode {
	if xmin == nil || xmax == nil || width <= 0 {
		return ModePerturbation
	}
	span := new(big.Float).SetPrec(CoordPrec).Sub(xmax, xmin)
	if span.Sign() <= 0 || span.IsInf() {
		return ModePerturbation
	}
	need := requiredBits(xmin, xmax, span, width)
	switch {
	case need <= doubleMantBits:
		return ModeDouble
	case need <= extendedMantBits:
		return ModeExtended
	case need <= quadMantBits:
		return ModeQuad
	default:
		return ModePerturbation
	}
}

// requiredBits estimates the significant bits needed to separate adjacent
// pixels: the exponent gap between the coordinate magnitude and the per-pixel
// step, i.e. log2(mag) - log2(span) + log2(width).
func requiredBits(xmin, xmax, span *big.Float, width int) int {
	magExp := 1 // the bailout disc spans |c| <= 2, so never assume less
	if xmin.Sign() != 0 {
		if e := xmin.MantExp(nil); e > magExp {
			magExp = e
		}
	}
	if xmax.Sign() != 0 {
		if e := xmax.MantExp(nil); e > magExp {
			magExp = e
		}
	}
	spanExp := span.MantExp(nil)
	return magExp - spanExp + bits.Len(uint(width))
}

// GetPrecisionMode is the decimal-string mode query used by consumers before
// dispatch, for diagnostics and telemetry. The returned integer matches the
// PrecisionMode numbering.
func GetPrecisionMode(xmin, xmax string, width int) (int, error) {
	lo, err := ParseCoord(xmin)
	if err != nil {
		return 0, err
	}
	hi, err := ParseCoord(xmax)
	if err != nil {
		return 0, err
	}
	return int(SelectMode(lo, hi, width)), nil
}
