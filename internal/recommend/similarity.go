// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// Vectors is a row-indexed set of feature vectors that can be compared by
// cosine similarity. Both the raw sparse matrix and the reduced dense matrix
// satisfy it, so the similarity code is agnostic to which one it is given.
type Vectors interface {
	// Rows returns the number of rows (catalog size).
	Rows() int

	// Dims returns the vector dimensionality.
	Dims() int

	// Cosine returns sim(i, j) in [-1, 1]. sim(i, i) is exactly 1 for a
	// non-zero row and 0 for a zero row.
	Cosine(i, j int) float64

	// CosineRow writes sim(q, r) for every row r into dst, which must have length Rows().
	CosineRow(q int, dst []float64)
}

// Neighbor is a ranked similarity result.
type Neighbor struct {
	Row   int
	Score float64
}

// cosineFromDot turns an inner product and two squared norms into a cosine,
// defining zero-norm vectors as dissimilar to everything and clamping rounding
// overshoot. Taking one square root of the product keeps identical vectors at
// exactly 1, since sqrt(x*x) == x in IEEE arithmetic.
func cosineFromDot(dot, sqNormA, sqNormB float64) float64 {
	if sqNormA == 0 || sqNormB == 0 {
		return 0
	}
	s := dot / math.Sqrt(sqNormA*sqNormB)
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

func selfCosine(sqNorm float64) float64 {
	if sqNorm == 0 {
		return 0
	}
	return 1
}

// ranksBefore is the single ordering used for every ranked result:
// higher score first, and on equal scores the smaller row first.
func ranksBefore(a, b Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Row < b.Row
}

// TopK returns the k rows most similar to query, excluding query itself,
// ordered by ranksBefore. When k exceeds Rows()-1 every other row is returned.
func TopK(v Vectors, query, k int) ([]Neighbor, error) {
	if err := checkQuery(v.Rows(), query, k); err != nil {
		return nil, err
	}
	if k == 0 || v.Rows() <= 1 {
		return []Neighbor{}, nil
	}

	scores := make([]float64, v.Rows())
	v.CosineRow(query, scores)
	return selectTop(scores, query, k), nil
}

func checkQuery(rows, query, k int) error {
	if k < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if query < 0 || query >= rows {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrRowOutOfRange, query, rows)
	}
	return nil
}

// selectTop picks the best k entries of scores other than skip.
// A bounded heap keeps selection at O(n log k).
func selectTop(scores []float64, skip, k int) []Neighbor {
	if k > len(scores)-1 {
		k = len(scores) - 1
	}

	h := make(worstFirst, 0, k)
	for r, s := range scores {
		if r == skip {
			continue
		}
		n := Neighbor{Row: r, Score: s}
		if len(h) < k {
			heap.Push(&h, n)
			continue
		}
		if ranksBefore(n, h[0]) {
			h[0] = n
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(i, j int) bool { return ranksBefore(out[i], out[j]) })
	return out
}

// worstFirst is a heap whose root is the lowest ranked neighbor kept so far.
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(Neighbor)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
