// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// Triplet is one non-zero entry of a sparse matrix in coordinate form.
type Triplet struct {
	Row    int
	Col    int
	Weight float64
}

// SparseMatrix is an immutable compressed sparse row (CSR) matrix.
// Row i's non-zeros are indices[indptr[i]:indptr[i+1]] (ascending) with the
// matching data entries. Squared row norms are computed once at construction.
type SparseMatrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	data    []float64
	sqNorms []float64
}

// NewSparseMatrix builds a rows x cols CSR matrix from coordinate entries.
// Duplicate (row, col) entries are summed and explicit zeros are dropped.
// Entries outside the shape, or with negative, NaN or infinite weights, are rejected.
func NewSparseMatrix(rows, cols int, entries []Triplet) (*SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid shape %dx%d", rows, cols)
	}

	sorted := make([]Triplet, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Row < 0 || e.Row >= rows:
			return nil, fmt.Errorf("row %d outside [0, %d)", e.Row, rows)
		case e.Col < 0 || e.Col >= cols:
			return nil, fmt.Errorf("column %d outside [0, %d)", e.Col, cols)
		case math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0):
			return nil, fmt.Errorf("non-finite weight at (%d, %d)", e.Row, e.Col)
		case e.Weight < 0:
			return nil, fmt.Errorf("negative weight %g at (%d, %d)", e.Weight, e.Row, e.Col)
		}
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	m := &SparseMatrix{
		rows:    rows,
		cols:    cols,
		indptr:  make([]int, rows+1),
		indices: make([]int, 0, len(sorted)),
		data:    make([]float64, 0, len(sorted)),
		sqNorms: make([]float64, rows),
	}

	for i := 0; i < len(sorted); {
		r, c := sorted[i].Row, sorted[i].Col
		sum := 0.0
		for ; i < len(sorted) && sorted[i].Row == r && sorted[i].Col == c; i++ {
			sum += sorted[i].Weight
		}
		if sum == 0 {
			continue
		}
		m.indices = append(m.indices, c)
		m.data = append(m.data, sum)
		m.indptr[r+1]++
	}
	for r := 0; r < rows; r++ {
		m.indptr[r+1] += m.indptr[r]
	}

	for r := 0; r < rows; r++ {
		sq := 0.0
		for _, v := range m.data[m.indptr[r]:m.indptr[r+1]] {
			sq += v * v
		}
		m.sqNorms[r] = sq
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *SparseMatrix) Rows() int { return m.rows }

// Dims returns the number of columns (vocabulary size).
func (m *SparseMatrix) Dims() int { return m.cols }

// NNZ returns the number of stored non-zero entries.
func (m *SparseMatrix) NNZ() int { return len(m.data) }

// Norm returns the Euclidean norm of row i.
func (m *SparseMatrix) Norm(i int) float64 { return math.Sqrt(m.sqNorms[i]) }

// Row returns the column indices and values of row i. Callers must not modify them.
func (m *SparseMatrix) Row(i int) ([]int, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// Dot returns the inner product of rows i and j.
func (m *SparseMatrix) Dot(i, j int) float64 {
	ai, av := m.Row(i)
	bi, bv := m.Row(j)
	sum := 0.0
	for p, q := 0, 0; p < len(ai) && q < len(bi); {
		switch {
		case ai[p] == bi[q]:
			sum += av[p] * bv[q]
			p++
			q++
		case ai[p] < bi[q]:
			p++
		default:
			q++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of rows i and j.
func (m *SparseMatrix) Cosine(i, j int) float64 {
	if i == j {
		return selfCosine(m.sqNorms[i])
	}
	return cosineFromDot(m.Dot(i, j), m.sqNorms[i], m.sqNorms[j])
}

// CosineRow writes the cosine similarity of row q against every row into dst.
// The query row is scattered into a dense buffer so each row costs only its own non-zeros.
func (m *SparseMatrix) CosineRow(q int, dst []float64) {
	qi, qv := m.Row(q)
	dense := make([]float64, m.cols)
	for p, c := range qi {
		dense[c] = qv[p]
	}
	qn := m.sqNorms[q]

	for r := 0; r < m.rows; r++ {
		if r == q {
			dst[r] = selfCosine(qn)
			continue
		}
		idx, val := m.Row(r)
		sum := 0.0
		for p, c := range idx {
			if w := dense[c]; w != 0 {
				sum += w * val[p]
			}
		}
		dst[r] = cosineFromDot(sum, qn, m.sqNorms[r])
	}
}
