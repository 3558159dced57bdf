// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements content-based movie recommendations over a
// precomputed term-weight matrix.
//
// # Architecture
//
// Components, leaves first:
//
//   - FeatureStore: the immutable sparse (CSR) term-weight matrix plus the
//     title to row mapping. Title lookup is exact and case-sensitive.
//   - Reducer: optional randomized truncated SVD (gonum) projecting the
//     sparse matrix to K dense dimensions with a fixed seed.
//   - Index: cosine top-K over either representation. Eager precomputes the
//     full N x N score matrix at startup; lazy scores one row per query.
//   - Gateway: maps titles to rows and rows back to titles, applies K
//     defaults and limits, and memoizes results.
//
// # Lifecycle
//
// Build runs load, reduce and index synchronously and returns an Engine only
// when every stage succeeded. Nothing is mutated afterwards, so any number of
// Recommend calls may run concurrently without locks.
//
// # Ordering
//
// Results are ordered by score descending, ties by smaller row first. The
// comparator is total, so the order never depends on sort stability.
//
// # Usage
//
//	eng, err := recommend.Build(ctx, recommend.DefaultConfig(), recommend.Sources{
//	    Titles: titleSource,
//	    Matrix: matrixSource,
//	}, logger)
//	if err != nil {
//	    return err // *ArtifactLoadError or *ReductionError
//	}
//
//	rec, err := eng.Recommend(ctx, recommend.Request{Title: "Toy Story"})
//	var nf *recommend.NotFoundError
//	if errors.As(err, &nf) {
//	    // render "title not found"
//	}
package recommend
