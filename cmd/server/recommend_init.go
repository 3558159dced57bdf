// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// initRecommend builds the recommendation engine from the configured
// artifacts. Any error is fatal for startup: the service never serves a
// partially built engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, db *database.DB, logger zerolog.Logger) (*recommend.Engine, error) {
	src := database.NewArtifactSource(db, cfg.Artifacts)

	sources := recommend.Sources{Titles: src, Matrix: src}
	if src.HasReduced() {
		// Left nil otherwise so Build sees an unset interface, not a typed nil.
		sources.Reduced = src
	}

	logger.Info().
		Str("title_index", cfg.Artifacts.TitleIndexPath).
		Str("matrix", cfg.Artifacts.MatrixPath).
		Bool("precomputed_reduction", src.HasReduced()).
		Bool("reduction", cfg.Recommend.Reduction.Enabled).
		Str("strategy", cfg.Recommend.Strategy).
		Msg("Building recommendation engine")

	engine, err := recommend.Build(ctx, buildEngineConfig(&cfg.Recommend), sources, logger)
	if err != nil {
		return nil, fmt.Errorf("build recommendation engine: %w", err)
	}

	recordEngineMetrics(engine.Stats())
	return engine, nil
}

// buildEngineConfig maps the service configuration onto the engine's.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Reduction: recommend.ReductionConfig{
			Enabled:         rc.Reduction.Enabled,
			Rank:            rc.Reduction.Rank,
			Oversamples:     rc.Reduction.Oversamples,
			PowerIterations: rc.Reduction.PowerIterations,
			Seed:            rc.Reduction.Seed,
		},
		Similarity: recommend.SimilarityConfig{
			Strategy:     recommend.Strategy(rc.Strategy),
			EagerMaxRows: rc.EagerMaxRows,
			Workers:      rc.Workers,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: rc.DefaultK,
			MaxK:     rc.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.Cache.Enabled,
			TTL:        rc.Cache.TTL,
			MaxEntries: rc.Cache.MaxEntries,
		},
	}
}

func recordEngineMetrics(stats recommend.BuildStats) {
	metrics.RecordStartupPhase(metrics.PhaseFeatures, stats.LoadDuration)
	if stats.Reduced {
		metrics.RecordStartupPhase(metrics.PhaseReduction, stats.ReduceDuration)
	}
	metrics.RecordStartupPhase(metrics.PhaseIndex, stats.IndexDuration)
	metrics.SetEngineShape(stats.Rows, stats.Dimensions)
}

// cachePurgeInterval runs maintenance a few times per TTL, within sane bounds.
func cachePurgeInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	switch {
	case interval < 30*time.Second:
		return 30 * time.Second
	case interval > 15*time.Minute:
		return 15 * time.Minute
	}
	return interval
}
