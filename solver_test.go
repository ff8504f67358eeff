package cag

import (
	"math"
	"sort"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func verifyRoots(t *testing.T, roots, expected []float64, epsilon float64) {
	t.Helper()

	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, want %d. roots=%v, expected=%v",
			len(roots), len(expected), roots, expected)
	}

	sortedRoots := append([]float64{}, roots...)
	sort.Float64s(sortedRoots)
	sortedExpected := append([]float64{}, expected...)
	sort.Float64s(sortedExpected)

	for i := range sortedRoots {
		if !almostEqual(sortedRoots[i], sortedExpected[i], epsilon) {
			t.Errorf("root[%d] = %v, want %v (roots=%v, expected=%v)",
				i, sortedRoots[i], sortedExpected[i], sortedRoots, sortedExpected)
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  float64
		expected []float64
	}{
		{
			name: "two distinct roots",
			a:    1, b: 0, c: -5,
			expected: []float64{-math.Sqrt(5), math.Sqrt(5)},
		},
		{
			name: "no real roots",
			a:    1, b: 0, c: 5,
			expected: nil,
		},
		{
			name: "double root",
			a:    1, b: -2, c: 1,
			expected: []float64{1},
		},
		{
			name: "linear when a is zero",
			a:    0, b: 2, c: -4,
			expected: []float64{2},
		},
		{
			name: "factored roots",
			a:    2, b: -10, c: 12,
			expected: []float64{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifyRoots(t, SolveQuadratic(tt.a, tt.b, tt.c), tt.expected, 1e-10)
		})
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		expected   []float64
	}{
		{
			name: "three distinct roots",
			// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6
			a: 1, b: -6, c: 11, d: -6,
			expected: []float64{1, 2, 3},
		},
		{
			name: "one real root",
			// x^3 + x + 1
			a: 1, b: 0, c: 1, d: 1,
			expected: []float64{-0.6823278038280193},
		},
		{
			name: "quadratic when a is zero",
			a:    0, b: 1, c: 0, d: -4,
			expected: []float64{-2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifyRoots(t, SolveCubic(tt.a, tt.b, tt.c, tt.d), tt.expected, 1e-9)
		})
	}
}

func TestSolveInUnitInterval(t *testing.T) {
	// (x-0.5)(x-2) = x^2 - 2.5x + 1
	verifyRoots(t, SolveQuadraticInUnitInterval(1, -2.5, 1), []float64{0.5}, 1e-12)

	// (x-0.25)(x-0.75)(x-5) = x^3 - 6x^2 + 5.1875x - 0.9375
	verifyRoots(t, SolveCubicInUnitInterval(1, -6, 5.1875, -0.9375),
		[]float64{0.25, 0.75}, 1e-9)
}
