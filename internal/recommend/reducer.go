// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Reduction is the output of fitting a truncated SVD to the feature matrix.
type Reduction struct {
	// Matrix is U_k * Sigma_k, one row per catalog row.
	Matrix *DenseMatrix

	// SingularValues are the top-k singular values, descending.
	SingularValues []float64

	// ExplainedVarianceRatio is the share of the feature matrix's column
	// variance captured by the k components. Zero for precomputed matrices.
	ExplainedVarianceRatio float64

	// Precomputed is true when the matrix was loaded rather than fitted.
	Precomputed bool
}

// Reducer projects a sparse feature matrix onto its top singular directions
// using a randomized range finder (Halko, Martinsson and Tropp) followed by an
// exact thin SVD of the small projected problem.
type Reducer struct {
	cfg    ReductionConfig
	logger zerolog.Logger
}

// NewReducer creates a reducer. The seed in cfg fixes the random test matrix,
// so repeated fits of the same input produce identical output.
func NewReducer(cfg ReductionConfig, logger zerolog.Logger) *Reducer {
	return &Reducer{
		cfg:    cfg,
		logger: logger.With().Str("component", "reducer").Logger(),
	}
}

// Fit reduces a to cfg.Rank dimensions. The rank must satisfy
// 1 <= rank < min(rows, cols); anything else is a *ReductionError.
func (r *Reducer) Fit(ctx context.Context, a *SparseMatrix) (*Reduction, error) {
	n, v := a.Rows(), a.Dims()
	k := r.cfg.Rank

	limit := min(n, v)
	switch {
	case k < 1:
		return nil, &ReductionError{Rank: k, Rows: n, Cols: v, Reason: "rank must be at least 1"}
	case k >= limit:
		return nil, &ReductionError{Rank: k, Rows: n, Cols: v,
			Reason: fmt.Sprintf("rank must be below min(rows, cols) = %d", limit)}
	case r.cfg.Oversamples < 0 || r.cfg.PowerIterations < 0:
		return nil, &ReductionError{Rank: k, Rows: n, Cols: v, Reason: "oversamples and power iterations must be non-negative"}
	}

	l := min(k+r.cfg.Oversamples, limit)
	start := time.Now()

	rng := rand.New(rand.NewSource(r.cfg.Seed)) //nolint:gosec // reproducible test matrix, not security sensitive
	omega := mat.NewDense(v, l, nil)
	raw := omega.RawMatrix().Data
	for i := range raw {
		raw[i] = rng.NormFloat64()
	}

	q, err := orthonormalize(mulSparse(a, omega))
	if err != nil {
		return nil, r.svdFailure(k, n, v, err)
	}
	for it := 0; it < r.cfg.PowerIterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("power iteration %d: %w", it, err)
		}
		z, err := orthonormalize(mulSparseT(a, q))
		if err != nil {
			return nil, r.svdFailure(k, n, v, err)
		}
		if q, err = orthonormalize(mulSparse(a, z)); err != nil {
			return nil, r.svdFailure(k, n, v, err)
		}
	}

	// B = Q^T A is l x v. Factorizing its transpose keeps the work on the narrow side.
	var svd mat.SVD
	if !svd.Factorize(mulSparseT(a, q), mat.SVDThin) {
		return nil, r.svdFailure(k, n, v, fmt.Errorf("projected SVD did not converge"))
	}
	sigma := svd.Values(nil)
	var w mat.Dense
	svd.VTo(&w)

	var u mat.Dense
	u.Mul(q, &w)

	out := make([]float64, n*k)
	for j := 0; j < k; j++ {
		sign := largestMagnitudeSign(&u, j)
		for i := 0; i < n; i++ {
			out[i*k+j] = sign * u.At(i, j) * sigma[j]
		}
	}

	reduced, err := NewDenseMatrix(n, k, out)
	if err != nil {
		return nil, r.svdFailure(k, n, v, err)
	}

	ratio := explainedVarianceRatio(a, reduced)
	r.logger.Info().
		Int("rows", n).
		Int("cols", v).
		Int("rank", k).
		Int("oversamples", r.cfg.Oversamples).
		Int("power_iterations", r.cfg.PowerIterations).
		Float64("explained_variance_ratio", ratio).
		Dur("duration", time.Since(start)).
		Msg("Feature matrix reduced")

	return &Reduction{
		Matrix:                 reduced,
		SingularValues:         append([]float64(nil), sigma[:k]...),
		ExplainedVarianceRatio: ratio,
	}, nil
}

func (r *Reducer) svdFailure(k, n, v int, err error) error {
	return &ReductionError{Rank: k, Rows: n, Cols: v, Reason: err.Error()}
}

// orthonormalize returns an orthonormal basis for the column space of y.
// The left singular vectors are used instead of QR because gonum's QR only
// exposes the full square Q.
func orthonormalize(y *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(y, mat.SVDThin) {
		return nil, fmt.Errorf("range finder SVD did not converge")
	}
	var u mat.Dense
	svd.UTo(&u)
	return &u, nil
}

// mulSparse returns a * b for a CSR a (n x v) and dense b (v x l).
func mulSparse(a *SparseMatrix, b *mat.Dense) *mat.Dense {
	_, l := b.Dims()
	out := mat.NewDense(a.Rows(), l, nil)
	o, bm := out.RawMatrix(), b.RawMatrix()
	for r := 0; r < a.Rows(); r++ {
		dst := o.Data[r*o.Stride : r*o.Stride+l]
		idx, val := a.Row(r)
		for p, c := range idx {
			src := bm.Data[c*bm.Stride : c*bm.Stride+l]
			for j := range dst {
				dst[j] += val[p] * src[j]
			}
		}
	}
	return out
}

// mulSparseT returns a^T * b for a CSR a (n x v) and dense b (n x l).
func mulSparseT(a *SparseMatrix, b *mat.Dense) *mat.Dense {
	_, l := b.Dims()
	out := mat.NewDense(a.Dims(), l, nil)
	o, bm := out.RawMatrix(), b.RawMatrix()
	for r := 0; r < a.Rows(); r++ {
		src := bm.Data[r*bm.Stride : r*bm.Stride+l]
		idx, val := a.Row(r)
		for p, c := range idx {
			dst := o.Data[c*o.Stride : c*o.Stride+l]
			for j := range dst {
				dst[j] += val[p] * src[j]
			}
		}
	}
	return out
}

// largestMagnitudeSign returns the sign that makes column j's largest
// absolute entry positive, so singular vector signs are reproducible.
func largestMagnitudeSign(u *mat.Dense, j int) float64 {
	rows, _ := u.Dims()
	best, sign := -1.0, 1.0
	for i := 0; i < rows; i++ {
		x := u.At(i, j)
		if math.Abs(x) > best {
			best = math.Abs(x)
			sign = 1
			if x < 0 {
				sign = -1
			}
		}
	}
	return sign
}

// explainedVarianceRatio compares the column variance of the reduced matrix
// with the total column variance of the original.
func explainedVarianceRatio(a *SparseMatrix, reduced *DenseMatrix) float64 {
	n := float64(a.Rows())
	if n < 2 {
		return 0
	}

	sums := make([]float64, a.Dims())
	squares := make([]float64, a.Dims())
	for r := 0; r < a.Rows(); r++ {
		idx, val := a.Row(r)
		for p, c := range idx {
			sums[c] += val[p]
			squares[c] += val[p] * val[p]
		}
	}
	total := 0.0
	for c := range sums {
		total += (squares[c] - sums[c]*sums[c]/n) / (n - 1)
	}
	if total <= 0 {
		return 0
	}

	explained := 0.0
	col := make([]float64, reduced.Rows())
	for j := 0; j < reduced.Dims(); j++ {
		for i := range col {
			col[i] = reduced.Row(i)[j]
		}
		explained += stat.Variance(col, nil)
	}
	return explained / total
}

// ReducedSource supplies a precomputed reduced matrix as (row, col, value) entries.
type ReducedSource interface {
	Reduced(ctx context.Context) ([]Triplet, error)
}

// LoadReduction reads a precomputed reduced matrix aligned with a catalog of
// the given size. Every catalog row must be present.
func LoadReduction(ctx context.Context, src ReducedSource, rows int) (*Reduction, error) {
	entries, err := src.Reduced(ctx)
	if err != nil {
		return nil, artifactError("reduced_matrix", "read failed", err)
	}

	cols := 0
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows {
			return nil, artifactError("reduced_matrix",
				fmt.Sprintf("row %d outside catalog of %d rows", e.Row, rows), nil)
		}
		if e.Col < 0 {
			return nil, artifactError("reduced_matrix", fmt.Sprintf("negative column %d", e.Col), nil)
		}
		cols = max(cols, e.Col+1)
	}
	if cols == 0 {
		return nil, artifactError("reduced_matrix", "no entries", nil)
	}

	data := make([]float64, rows*cols)
	seen := make([]bool, rows)
	for _, e := range entries {
		data[e.Row*cols+e.Col] = e.Weight
		seen[e.Row] = true
	}
	for row, ok := range seen {
		if !ok {
			return nil, artifactError("reduced_matrix",
				fmt.Sprintf("row %d missing; reduced matrix does not cover the catalog", row), nil)
		}
	}

	m, err := NewDenseMatrix(rows, cols, data)
	if err != nil {
		return nil, artifactError("reduced_matrix", "malformed matrix", err)
	}
	return &Reduction{Matrix: m, Precomputed: true}, nil
}
