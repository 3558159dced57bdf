// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"math"
	"testing"
)

func TestNewDenseMatrix_Errors(t *testing.T) {
	if _, err := NewDenseMatrix(2, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for data length mismatch")
	}
	if _, err := NewDenseMatrix(1, 2, []float64{1, math.NaN()}); err == nil {
		t.Error("expected error for NaN value")
	}
	if _, err := NewDenseMatrix(-1, 2, nil); err == nil {
		t.Error("expected error for negative shape")
	}
}

func TestDenseMatrix_Cosine(t *testing.T) {
	m := mustDense(t, [][]float64{
		{1, 0},
		{-1, 0},
		{0, 2},
		{0, 0},
		{0.6, 0.8},
	})

	tests := []struct {
		name string
		i, j int
		want float64
	}{
		{"self", 0, 0, 1},
		{"opposite", 0, 1, -1},
		{"orthogonal", 0, 2, 0},
		{"zero row", 3, 4, 0},
		{"partial", 0, 4, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Cosine(tt.i, tt.j)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Cosine(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
			}
		})
	}

	dst := make([]float64, m.Rows())
	for q := 0; q < m.Rows(); q++ {
		m.CosineRow(q, dst)
		for r := range dst {
			if dst[r] != m.Cosine(q, r) || dst[r] != m.Cosine(r, q) {
				t.Errorf("CosineRow(%d)[%d] = %v inconsistent with Cosine", q, r, dst[r])
			}
		}
	}
}

func TestCosineFromDot_Clamps(t *testing.T) {
	if got := cosineFromDot(1.0000001, 1, 1); got != 1 {
		t.Errorf("cosineFromDot overshoot = %v, want 1", got)
	}
	if got := cosineFromDot(-1.0000001, 1, 1); got != -1 {
		t.Errorf("cosineFromDot undershoot = %v, want -1", got)
	}
	if got := cosineFromDot(3, 0, 2); got != 0 {
		t.Errorf("cosineFromDot zero norm = %v, want 0", got)
	}
}
