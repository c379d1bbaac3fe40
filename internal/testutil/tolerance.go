package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first index where got and want
// differ by more than eps, or if their lengths differ.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if i, diff := firstMismatch(len(got), eps, func(i int) float64 {
		return math.Abs(got[i] - want[i])
	}); i >= 0 {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
	}
}

// RequireComplexNearlyEqual is RequireSliceNearlyEqual for complex bins,
// comparing the modulus of the difference.
func RequireComplexNearlyEqual(t testing.TB, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if i, diff := firstMismatch(len(got), eps, func(i int) float64 {
		return cmplx.Abs(got[i] - want[i])
	}); i >= 0 {
		t.Fatalf("bin %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
	}
}

// RMSDiff returns the root-mean-square of a-b over the shorter length.
func RMSDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := range n {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// firstMismatch returns the first index whose diff exceeds eps, or -1.
func firstMismatch(n int, eps float64, diff func(int) float64) (int, float64) {
	for i := range n {
		if d := diff(i); d > eps || math.IsNaN(d) {
			return i, d
		}
	}
	return -1, 0
}
