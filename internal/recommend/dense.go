// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"math"
)

// DenseMatrix is an immutable row-major matrix, used for reduced representations.
type DenseMatrix struct {
	rows  int
	cols  int
	data  []float64
	sqNorms []float64
}

// NewDenseMatrix wraps row-major data of shape rows x cols. The slice is retained.
func NewDenseMatrix(rows, cols int, data []float64) (*DenseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("data length %d does not match shape %dx%d", len(data), rows, cols)
	}

	m := &DenseMatrix{rows: rows, cols: cols, data: data, sqNorms: make([]float64, rows)}
	for r := 0; r < rows; r++ {
		sq := 0.0
		for _, v := range m.Row(r) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("non-finite value in row %d", r)
			}
			sq += v * v
		}
		m.sqNorms[r] = sq
	}
	return m, nil
}

func (m *DenseMatrix) Rows() int { return m.rows }

func (m *DenseMatrix) Dims() int { return m.cols }

func (m *DenseMatrix) Norm(i int) float64 { return math.Sqrt(m.sqNorms[i]) }

// Row returns a view of row i. Callers must not modify it.
func (m *DenseMatrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

func (m *DenseMatrix) Dot(i, j int) float64 {
	a, b := m.Row(i), m.Row(j)
	sum := 0.0
	for k := range a {
		sum += a[k] * b[k]
	}
	return sum
}

func (m *DenseMatrix) Cosine(i, j int) float64 {
	if i == j {
		return selfCosine(m.sqNorms[i])
	}
	return cosineFromDot(m.Dot(i, j), m.sqNorms[i], m.sqNorms[j])
}

func (m *DenseMatrix) CosineRow(q int, dst []float64) {
	qn := m.sqNorms[q]
	for r := 0; r < m.rows; r++ {
		if r == q {
			dst[r] = selfCosine(qn)
			continue
		}
		dst[r] = cosineFromDot(m.Dot(q, r), qn, m.sqNorms[r])
	}
}
