package glyphsvg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, -5, 6, []float64{2, 3}},
		{"scaled", 2, -10, 12, []float64{2, 3}},
		{"symmetric", 1, 0, -5, []float64{-math.Sqrt(5), math.Sqrt(5)}},
		{"double root", 1, 2, 1, []float64{-1}},
		{"no real roots", 1, 0, 5, nil},
		{"linear", 0, 1, 5, []float64{-5}},
		{"constant", 0, 0, 3, nil},
		{"all zero", 0, 0, 0, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveQuadratic(tt.a, tt.b, tt.c)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-10), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("roots mismatch (-want +got):\n%s", diff)
			}
			for _, r := range got {
				if v := tt.a*r*r + tt.b*r + tt.c; math.Abs(v) > 1e-8 {
					t.Errorf("f(%v) = %v, want 0", r, v)
				}
			}
		})
	}
}

func TestSolveQuadraticNearDoubleRoot(t *testing.T) {
	for _, r := range solveQuadratic(1, -2, 1+1e-15) {
		if math.Abs(r-1) > 1e-3 {
			t.Errorf("root %v not close to 1", r)
		}
	}
}

func TestSolveQuadraticInUnitInterval(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"outside", 1, 0, -100, nil},
		{"boundaries", 1, -1, 0, []float64{0, 1}},
		{"one inside", 1, -0.5, 0, []float64{0, 0.5}},
		{"both inside", 1, -0.6, 0.08, []float64{0.2, 0.4}},
		{"clamped", 1, -(1 + 1e-13), 1e-13, []float64{1e-13, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveQuadraticInUnitInterval(tt.a, tt.b, tt.c)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-10), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("roots mismatch (-want +got):\n%s", diff)
			}
			for _, r := range got {
				if r < 0 || r > 1 {
					t.Errorf("root %v outside [0,1]", r)
				}
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	for _, x := range []float64{0, 1, -1, math.MaxFloat64} {
		if !isFinite(x) {
			t.Errorf("isFinite(%v) = false", x)
		}
	}
	for _, x := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if isFinite(x) {
			t.Errorf("isFinite(%v) = true", x)
		}
	}
}
