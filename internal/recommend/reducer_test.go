// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func testReductionConfig(rank int) ReductionConfig {
	return ReductionConfig{
		Enabled:         true,
		Rank:            rank,
		Oversamples:     10,
		PowerIterations: 2,
		Seed:            42,
	}
}

func TestReducer_RejectsInvalidRank(t *testing.T) {
	m := mustSparse(t, lowRankRows()) // 12 x 10

	tests := []struct {
		name string
		rank int
	}{
		{"zero", 0},
		{"negative", -3},
		{"equal to min dimension", 10},
		{"above min dimension", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReducer(testReductionConfig(tt.rank), zerolog.Nop())
			got, err := r.Fit(context.Background(), m)
			if got != nil {
				t.Error("Fit() returned a reduction for an invalid rank")
			}
			var re *ReductionError
			if !errors.As(err, &re) {
				t.Fatalf("Fit() error = %v, want *ReductionError", err)
			}
			if re.Rank != tt.rank || re.Rows != 12 || re.Cols != 10 {
				t.Errorf("ReductionError = %+v, want rank %d on 12x10", re, tt.rank)
			}
			if !errors.Is(err, ErrReduction) {
				t.Error("errors.Is(err, ErrReduction) = false")
			}
		})
	}
}

func TestReducer_PreservesRowsAndIsDeterministic(t *testing.T) {
	m := mustSparse(t, tieHeavyRows(20, 15))
	cfg := testReductionConfig(4)

	first, err := NewReducer(cfg, zerolog.Nop()).Fit(context.Background(), m)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	second, err := NewReducer(cfg, zerolog.Nop()).Fit(context.Background(), m)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if first.Matrix.Rows() != m.Rows() {
		t.Errorf("Rows() = %d, want %d", first.Matrix.Rows(), m.Rows())
	}
	if first.Matrix.Dims() != 4 {
		t.Errorf("Dims() = %d, want 4", first.Matrix.Dims())
	}
	if !reflect.DeepEqual(first.Matrix.data, second.Matrix.data) {
		t.Error("two fits with the same seed differ")
	}
	if len(first.SingularValues) != 4 {
		t.Fatalf("len(SingularValues) = %d, want 4", len(first.SingularValues))
	}
	for i := 1; i < len(first.SingularValues); i++ {
		if first.SingularValues[i] > first.SingularValues[i-1] {
			t.Errorf("singular values not descending: %v", first.SingularValues)
		}
	}
	if first.ExplainedVarianceRatio <= 0 || first.ExplainedVarianceRatio > 1+1e-9 {
		t.Errorf("ExplainedVarianceRatio = %v, want (0, 1]", first.ExplainedVarianceRatio)
	}
}

func TestReducer_SignConvention(t *testing.T) {
	m := mustSparse(t, tieHeavyRows(20, 15))
	red, err := NewReducer(testReductionConfig(3), zerolog.Nop()).Fit(context.Background(), m)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for j := 0; j < red.Matrix.Dims(); j++ {
		best := 0.0
		for i := 0; i < red.Matrix.Rows(); i++ {
			if v := red.Matrix.Row(i)[j]; math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		if best < 0 {
			t.Errorf("component %d: largest magnitude entry %v is negative", j, best)
		}
	}
}

// An exactly rank-2 matrix reduced to rank 2 keeps every cosine score.
func TestReducer_ExactLowRankKeepsScores(t *testing.T) {
	const tolerance = 1e-6

	m := mustSparse(t, lowRankRows())
	red, err := NewReducer(testReductionConfig(2), zerolog.Nop()).Fit(context.Background(), m)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Rows(); j++ {
			want := m.Cosine(i, j)
			got := red.Matrix.Cosine(i, j)
			if math.Abs(got-want) > tolerance {
				t.Fatalf("cosine(%d, %d): reduced %v, original %v", i, j, got, want)
			}
		}
	}
	if math.Abs(red.ExplainedVarianceRatio-1) > tolerance {
		t.Errorf("ExplainedVarianceRatio = %v, want 1", red.ExplainedVarianceRatio)
	}
}

// Reference scores on a near low-rank catalog stay within a fixed tolerance
// of the unreduced scores.
func TestReducer_ScoreDriftWithinTolerance(t *testing.T) {
	const tolerance = 0.05

	rows := lowRankRows()
	rows[3][9] += 0.01
	rows[7][0] += 0.02
	m := mustSparse(t, rows)

	red, err := NewReducer(testReductionConfig(2), zerolog.Nop()).Fit(context.Background(), m)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Rows(); j++ {
			if d := math.Abs(red.Matrix.Cosine(i, j) - m.Cosine(i, j)); d > tolerance {
				t.Errorf("cosine(%d, %d) drifted by %v", i, j, d)
			}
		}
	}
}

func TestReducer_ContextCancelled(t *testing.T) {
	m := mustSparse(t, lowRankRows())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReducer(testReductionConfig(2), zerolog.Nop()).Fit(ctx, m)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fit() error = %v, want context.Canceled", err)
	}
}

func TestLoadReduction(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		red, err := LoadReduction(ctx, fakeReduced{entries: []Triplet{
			{Row: 0, Col: 0, Weight: 1}, {Row: 0, Col: 1, Weight: -2},
			{Row: 1, Col: 1, Weight: 3},
		}}, 2)
		if err != nil {
			t.Fatalf("LoadReduction() error = %v", err)
		}
		if !red.Precomputed {
			t.Error("Precomputed = false, want true")
		}
		if red.Matrix.Rows() != 2 || red.Matrix.Dims() != 2 {
			t.Errorf("shape = %dx%d, want 2x2", red.Matrix.Rows(), red.Matrix.Dims())
		}
		if got := red.Matrix.Row(0); got[1] != -2 {
			t.Errorf("Row(0) = %v, want [1 -2]", got)
		}
	})

	tests := []struct {
		name string
		src  fakeReduced
	}{
		{"missing row", fakeReduced{entries: []Triplet{{Row: 0, Col: 0, Weight: 1}}}},
		{"row beyond catalog", fakeReduced{entries: []Triplet{
			{Row: 0, Col: 0, Weight: 1}, {Row: 1, Col: 0, Weight: 1}, {Row: 2, Col: 0, Weight: 1},
		}}},
		{"empty", fakeReduced{}},
		{"source error", fakeReduced{err: errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReduction(ctx, tt.src, 2)
			var ae *ArtifactLoadError
			if !errors.As(err, &ae) {
				t.Fatalf("LoadReduction() error = %v, want *ArtifactLoadError", err)
			}
			if ae.Artifact != "reduced_matrix" {
				t.Errorf("Artifact = %q, want reduced_matrix", ae.Artifact)
			}
		})
	}
}
