// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Strategy selects how pairwise similarities are obtained.
type Strategy string

const (
	// StrategyEager computes the full N x N similarity matrix once at startup.
	StrategyEager Strategy = "eager"
	// StrategyLazy computes one row of similarities per query.
	StrategyLazy Strategy = "lazy"
	// StrategyAuto is eager up to SimilarityConfig.EagerMaxRows rows, lazy above.
	StrategyAuto Strategy = "auto"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Reduction controls the optional truncated SVD stage.
	Reduction ReductionConfig `json:"reduction"`

	// Similarity controls how similarities are computed and cached.
	Similarity SimilarityConfig `json:"similarity"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// ReductionConfig configures the dimensionality reducer.
type ReductionConfig struct {
	// Enabled turns the reduction stage on. When off, similarity runs on the raw sparse matrix.
	// Default: true.
	Enabled bool `json:"enabled"`

	// Rank is the number of retained components K.
	// Default: 500.
	Rank int `json:"rank"`

	// Oversamples is the number of extra random directions sampled beyond Rank.
	// Default: 10.
	Oversamples int `json:"oversamples"`

	// PowerIterations sharpens the range estimate when singular values decay slowly.
	// Default: 4.
	PowerIterations int `json:"power_iterations"`

	// Seed fixes the random test matrix.
	// Default: 42.
	Seed int64 `json:"seed"`
}

// SimilarityConfig configures the similarity index.
type SimilarityConfig struct {
	// Strategy is eager, lazy, or auto.
	// Default: auto.
	Strategy Strategy `json:"strategy"`

	// EagerMaxRows is the largest catalog auto will precompute (memory is 8*N^2 bytes).
	// Default: 5000.
	EagerMaxRows int `json:"eager_max_rows"`

	// Workers bounds parallelism while precomputing. Zero means GOMAXPROCS.
	// Default: 0.
	Workers int `json:"workers"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not specify K.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK caps K; larger requests are clamped.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether gateway results are memoized.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 1h.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached results.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Reduction: ReductionConfig{
			Enabled:         true,
			Rank:            500,
			Oversamples:     10,
			PowerIterations: 4,
			Seed:            42,
		},
		Similarity: SimilarityConfig{
			Strategy:     StrategyAuto,
			EagerMaxRows: 5000,
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Hour,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors. Rank is only checked against
// the data shape at fit time.
func (c *Config) Validate() error {
	if c.Reduction.Enabled {
		if c.Reduction.Rank < 1 {
			return fmt.Errorf("reduction.rank must be positive, got %d", c.Reduction.Rank)
		}
		if c.Reduction.Oversamples < 0 {
			return fmt.Errorf("reduction.oversamples must be non-negative, got %d", c.Reduction.Oversamples)
		}
		if c.Reduction.PowerIterations < 0 {
			return fmt.Errorf("reduction.power_iterations must be non-negative, got %d", c.Reduction.PowerIterations)
		}
	}

	switch c.Similarity.Strategy {
	case StrategyEager, StrategyLazy, StrategyAuto:
	default:
		return fmt.Errorf("similarity.strategy must be eager, lazy or auto, got %q", c.Similarity.Strategy)
	}
	if c.Similarity.EagerMaxRows < 0 {
		return fmt.Errorf("similarity.eager_max_rows must be non-negative, got %d", c.Similarity.EagerMaxRows)
	}
	if c.Similarity.Workers < 0 {
		return fmt.Errorf("similarity.workers must be non-negative, got %d", c.Similarity.Workers)
	}

	if c.Limits.DefaultK < 0 {
		return fmt.Errorf("limits.default_k must be non-negative, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
	}

	return nil
}
