// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Sources are the precomputed artifacts an Engine is built from.
type Sources struct {
	Titles TitleIndexSource
	Matrix MatrixSource

	// Reduced is an optional precomputed reduced matrix. When set and
	// reduction is enabled it is used instead of fitting.
	Reduced ReducedSource
}

// Engine is the fully initialized recommendation context: feature store,
// optional reduction, similarity index and query gateway. It only exists in
// the ready state; Build either returns a complete Engine or an error.
type Engine struct {
	config    *Config
	store     *FeatureStore
	reduction *Reduction
	index     *Index
	gateway   *Gateway
	stats     BuildStats
	logger    zerolog.Logger
}

// Build runs the one-shot initialization: load artifacts, reduce, index.
// Errors are *ArtifactLoadError or *ReductionError (or ctx errors) and are
// meant to abort startup.
func Build(ctx context.Context, cfg *Config, src Sources, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()
	e := &Engine{config: cfg, logger: logger}

	start := time.Now()
	store, err := LoadFeatureStore(ctx, src.Matrix, src.Titles)
	if err != nil {
		return nil, err
	}
	e.store = store
	e.stats.LoadDuration = time.Since(start)
	e.stats.Rows = store.RowCount()
	e.stats.UniqueTitles = store.UniqueTitles()
	e.stats.VocabularySize = store.Matrix().Dims()
	e.stats.NonZeros = store.Matrix().NNZ()

	logger.Info().
		Int("rows", e.stats.Rows).
		Int("unique_titles", e.stats.UniqueTitles).
		Int("vocabulary", e.stats.VocabularySize).
		Int("nnz", e.stats.NonZeros).
		Dur("duration", e.stats.LoadDuration).
		Msg("Feature store loaded")

	var vectors Vectors = store.Matrix()
	if cfg.Reduction.Enabled {
		start = time.Now()
		if src.Reduced != nil {
			e.reduction, err = LoadReduction(ctx, src.Reduced, store.RowCount())
		} else {
			e.reduction, err = NewReducer(cfg.Reduction, logger).Fit(ctx, store.Matrix())
		}
		if err != nil {
			return nil, err
		}
		vectors = e.reduction.Matrix
		e.stats.ReduceDuration = time.Since(start)
		e.stats.Reduced = true
		e.stats.ReductionPrecomputed = e.reduction.Precomputed
		e.stats.ExplainedVarianceRatio = e.reduction.ExplainedVarianceRatio
	}
	e.stats.Dimensions = vectors.Dims()

	start = time.Now()
	e.index, err = BuildIndex(ctx, vectors, cfg.Similarity, logger)
	if err != nil {
		return nil, err
	}
	e.stats.IndexDuration = time.Since(start)
	e.stats.Strategy = e.index.Strategy()

	e.gateway = NewGateway(store, e.index, cfg, logger)
	e.stats.ReadyAt = time.Now()

	logger.Info().
		Int("rows", e.stats.Rows).
		Int("dimensions", e.stats.Dimensions).
		Bool("reduced", e.stats.Reduced).
		Str("strategy", string(e.stats.Strategy)).
		Msg("Recommendation engine ready")

	return e, nil
}

// Recommend delegates to the query gateway.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	return e.gateway.Recommend(ctx, req)
}

// Stats describes the built engine.
func (e *Engine) Stats() BuildStats { return e.stats }

// GatewayStats returns cumulative query counters.
func (e *Engine) GatewayStats() GatewayStats { return e.gateway.Stats() }

// PurgeExpiredCache drops expired memoized results from the query gateway.
func (e *Engine) PurgeExpiredCache() (removed, remaining int) { return e.gateway.PurgeExpiredCache() }

// Store returns the feature store.
func (e *Engine) Store() *FeatureStore { return e.store }

// Index returns the similarity index.
func (e *Engine) Index() *Index { return e.index }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return *e.config }
