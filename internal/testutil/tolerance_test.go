package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqualWithinTolerance(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2.0005}, []float64{1, 2}, 1e-3)
}

func TestRequireFiniteAcceptsOrdinaryValues(t *testing.T) {
	RequireFinite(t, []float64{0, -1, math.MaxFloat64, math.SmallestNonzeroFloat64})
}
