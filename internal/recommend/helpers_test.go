// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"testing"
)

type fakeTitles struct {
	titles []string
	err    error
}

func (f fakeTitles) Titles(context.Context) ([]string, error) {
	return f.titles, f.err
}

type fakeMatrix struct {
	entries  []Triplet
	vocab    int
	err      error
	vocabErr error
}

func (f fakeMatrix) Weights(context.Context) ([]Triplet, error) {
	return f.entries, f.err
}

func (f fakeMatrix) VocabularySize(context.Context) (int, error) {
	return f.vocab, f.vocabErr
}

type fakeReduced struct {
	entries []Triplet
	err     error
}

func (f fakeReduced) Reduced(context.Context) ([]Triplet, error) {
	return f.entries, f.err
}

// triplets converts dense rows to coordinate entries, skipping zeros.
func triplets(rows [][]float64) []Triplet {
	var out []Triplet
	for r, row := range rows {
		for c, v := range row {
			if v != 0 {
				out = append(out, Triplet{Row: r, Col: c, Weight: v})
			}
		}
	}
	return out
}

func mustSparse(t *testing.T, rows [][]float64) *SparseMatrix {
	t.Helper()
	m, err := NewSparseMatrix(len(rows), len(rows[0]), triplets(rows))
	if err != nil {
		t.Fatalf("NewSparseMatrix() error = %v", err)
	}
	return m
}

func mustDense(t *testing.T, rows [][]float64) *DenseMatrix {
	t.Helper()
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		data = append(data, row...)
	}
	m, err := NewDenseMatrix(len(rows), cols, data)
	if err != nil {
		t.Fatalf("NewDenseMatrix() error = %v", err)
	}
	return m
}

// lowRankRows returns a 12x10 non-negative matrix of rank exactly 2.
func lowRankRows() [][]float64 {
	basis := [2][]float64{
		{1, 0, 2, 0, 1, 3, 0, 1, 0, 2},
		{0, 1, 1, 2, 0, 0, 3, 1, 1, 0},
	}
	rows := make([][]float64, 12)
	for i := range rows {
		a, b := float64(i%3+1), float64((i*7)%4)
		rows[i] = make([]float64, 10)
		for c := range rows[i] {
			rows[i][c] = a*basis[0][c] + b*basis[1][c]
		}
	}
	return rows
}

// tieHeavyRows returns rows with small integer entries so many scores tie.
func tieHeavyRows(n, dims int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, dims)
		for c := range rows[i] {
			rows[i][c] = float64((i*31 + c*17 + i*c) % 3)
		}
	}
	return rows
}

func neighborRows(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Row
	}
	return out
}

func intPtr(v int) *int { return &v }
