package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first element pair of got and want
// that differs by more than eps, or when their lengths differ.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, len(want) = %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("sample %d = %v, want %v (|diff| %.3g > %.3g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or infinite sample.
func RequireFinite(t *testing.T, x []float64) {
	t.Helper()

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d = %v, want finite", i, v)
		}
	}
}

// RequirePeakAt fails t unless the largest magnitude of x sits at index
// and equals value within eps.
func RequirePeakAt(t *testing.T, x []float64, index int, value, eps float64) {
	t.Helper()

	if got := PeakIndex(x); got != index {
		t.Fatalf("peak at %d, want %d", got, index)
	}

	if math.Abs(x[index]-value) > eps {
		t.Fatalf("peak = %v, want %v ± %.3g", x[index], value, eps)
	}
}

// RequireZeroFrom fails t if any sample of x at or after start is nonzero.
func RequireZeroFrom(t *testing.T, x []float64, start int) {
	t.Helper()

	for i := start; i < len(x); i++ {
		if x[i] != 0 {
			t.Fatalf("sample %d = %v, want 0 from index %d on", i, x[i], start)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference of a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch %d vs %d", len(a), len(b))
	}

	var worst float64
	for i := range a {
		worst = max(worst, math.Abs(a[i]-b[i]))
	}

	return worst, nil
}
