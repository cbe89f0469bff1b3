package testutil

import (
	"math"
	"testing"
)

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1.0005, 2}, 1e-3)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireInRange(t, []float64{0, 0.5, 1}, 0, 1)
	RequireRows(t, [][]float64{{1, 2}, {3, 4}}, 2, 2)
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v", got)
	}
	if got := RMS([]float64{3, -3, 3, -3}); math.Abs(got-3) > 1e-15 {
		t.Fatalf("RMS = %v, want 3", got)
	}
}
