// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// eagerBlockRows is the number of rows one worker computes per task.
const eagerBlockRows = 64

// Index answers top-K similarity queries over a fixed set of vectors.
//
// With the eager strategy every pairwise score is computed once during
// BuildIndex and stored; queries then only select. With the lazy strategy each
// query computes a single row of scores. Both produce identical results because
// they share Vectors.CosineRow. An Index is read-only once built.
type Index struct {
	vectors  Vectors
	strategy Strategy
	scores   []float64 // N*N, row-major; eager only
}

// BuildIndex resolves the strategy and, for eager, precomputes all scores.
// The returned Index is complete; a cancelled or failed build returns no Index.
func BuildIndex(ctx context.Context, v Vectors, cfg SimilarityConfig, logger zerolog.Logger) (*Index, error) {
	logger = logger.With().Str("component", "similarity").Logger()

	strategy := cfg.Strategy
	if strategy == StrategyAuto || strategy == "" {
		strategy = StrategyLazy
		if v.Rows() <= cfg.EagerMaxRows {
			strategy = StrategyEager
		}
	}

	ix := &Index{vectors: v, strategy: strategy}
	if strategy == StrategyLazy {
		logger.Info().Int("rows", v.Rows()).Str("strategy", string(strategy)).Msg("Similarity index ready")
		return ix, nil
	}
	if strategy != StrategyEager {
		return nil, fmt.Errorf("unknown similarity strategy %q", strategy)
	}

	start := time.Now()
	n := v.Rows()
	scores := make([]float64, n*n)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += eagerBlockRows {
		hi := min(lo+eagerBlockRows, n)
		g.Go(func() error {
			for r := lo; r < hi; r++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				v.CosineRow(r, scores[r*n:(r+1)*n])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("precompute similarity matrix: %w", err)
	}

	ix.scores = scores
	logger.Info().
		Int("rows", n).
		Str("strategy", string(strategy)).
		Int("workers", workers).
		Int64("bytes", int64(n)*int64(n)*8).
		Dur("duration", time.Since(start)).
		Msg("Similarity matrix precomputed")

	return ix, nil
}

// Strategy returns the resolved strategy (never auto).
func (ix *Index) Strategy() Strategy { return ix.strategy }

// Rows returns the number of indexed rows.
func (ix *Index) Rows() int { return ix.vectors.Rows() }

// Dims returns the dimensionality of the indexed vectors.
func (ix *Index) Dims() int { return ix.vectors.Dims() }

// Similarity returns sim(i, j).
func (ix *Index) Similarity(i, j int) float64 {
	if ix.scores != nil {
		n := ix.vectors.Rows()
		return ix.scores[i*n+j]
	}
	return ix.vectors.Cosine(i, j)
}

// TopK returns the k nearest rows to query, excluding query. See TopK.
func (ix *Index) TopK(query, k int) ([]Neighbor, error) {
	if ix.scores == nil {
		return TopK(ix.vectors, query, k)
	}

	n := ix.vectors.Rows()
	if err := checkQuery(n, query, k); err != nil {
		return nil, err
	}
	if k == 0 || n <= 1 {
		return []Neighbor{}, nil
	}
	return selectTop(ix.scores[query*n:(query+1)*n], query, k), nil
}
