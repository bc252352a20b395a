// Package testutil provides shared test infrastructure for the skill ranker.
// It consolidates assertion helpers used across sim/ and its sub-package tests.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertFinite fails if v is NaN or ±Inf.
func AssertFinite(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Errorf("%s: got %v, want a finite value", name, v)
	}
}

// Counts returns how many times each value occurs in values.
func Counts(values []int) map[int]int {
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

// Sequence returns [from, from+1, ..., to] as float64s.
func Sequence(from, to int) []float64 {
	out := make([]float64, 0, max(to-from+1, 0))
	for i := from; i <= to; i++ {
		out = append(out, float64(i))
	}
	return out
}
