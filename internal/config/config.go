// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Inputs:
//     - Artifacts: precomputed catalog, title index, term-weight matrix, vocabulary
//     - Database: DuckDB engine used to read artifacts and answer catalog lookups
//
//  2. Engine:
//     - Recommend: reduction, similarity strategy, limits, result cache
//     - Catalog: lookup policy (vote threshold)
//
//  3. Serving:
//     - Server: HTTP listener and shutdown
//     - Security: CORS and rate limiting
//
//  4. Observability:
//     - Logging: level, format, caller
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // ":memory:" keeps everything in process
	MaxMemory string `koanf:"max_memory"` // DuckDB memory limit, e.g. "1GB"
	Threads   int    `koanf:"threads"`    // 0 = runtime.NumCPU()
}

// ArtifactsConfig locates the precomputed inputs. Each path may be Parquet or
// CSV; the reader is chosen by file extension.
type ArtifactsConfig struct {
	// CatalogPath is the movie table used by the lookup endpoints.
	CatalogPath string `koanf:"catalog_path"`

	// TitleIndexPath lists titles in matrix row order.
	TitleIndexPath string `koanf:"title_index_path"`

	// TitleColumn names the title column in the title index.
	// Default: title
	TitleColumn string `koanf:"title_column"`

	// MatrixPath holds (row, col, weight) entries of the term-weight matrix.
	MatrixPath string `koanf:"matrix_path"`

	// VocabularyPath holds (term, col) pairs from the vectorizer. Optional.
	VocabularyPath string `koanf:"vocabulary_path"`

	// ReducedPath holds (row, col, value) entries of a precomputed reduced matrix. Optional.
	ReducedPath string `koanf:"reduced_path"`
}

// RecommendConfig mirrors recommend.Config with koanf tags.
type RecommendConfig struct {
	DefaultK     int    `koanf:"default_k"`
	MaxK         int    `koanf:"max_k"`
	Strategy     string `koanf:"strategy"` // eager, lazy, auto
	EagerMaxRows int    `koanf:"eager_max_rows"`
	Workers      int    `koanf:"workers"`

	Reduction ReductionConfig   `koanf:"reduction"`
	Cache     RecommendCacheCfg `koanf:"cache"`
}

// ReductionConfig configures the truncated SVD stage.
type ReductionConfig struct {
	Enabled         bool  `koanf:"enabled"`
	Rank            int   `koanf:"rank"`
	Oversamples     int   `koanf:"oversamples"`
	PowerIterations int   `koanf:"power_iterations"`
	Seed            int64 `koanf:"seed"`
}

// RecommendCacheCfg configures the gateway result cache.
type RecommendCacheCfg struct {
	Enabled    bool          `koanf:"enabled"`
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

// CatalogConfig holds catalog lookup policy.
type CatalogConfig struct {
	// MinVotes is the vote count a title needs before its average is reported as qualified.
	// Default: 2000
	MinVotes int64 `koanf:"min_votes"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
