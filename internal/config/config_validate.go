// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

// supportedArtifactExts lists the file formats DuckDB can scan without extensions
var supportedArtifactExts = map[string]bool{
	".parquet": true,
	".csv":     true,
}

// validateArtifacts validates artifact locations. Optional artifacts are only
// checked when set.
func (c *Config) validateArtifacts() error {
	required := []struct {
		name  string
		value string
	}{
		{"CATALOG_PATH", c.Artifacts.CatalogPath},
		{"TITLE_INDEX_PATH", c.Artifacts.TitleIndexPath},
		{"MATRIX_PATH", c.Artifacts.MatrixPath},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
		if err := validateArtifactExt(r.name, r.value); err != nil {
			return err
		}
	}

	optional := []struct {
		name  string
		value string
	}{
		{"VOCABULARY_PATH", c.Artifacts.VocabularyPath},
		{"REDUCED_PATH", c.Artifacts.ReducedPath},
	}
	for _, o := range optional {
		if o.value == "" {
			continue
		}
		if err := validateArtifactExt(o.name, o.value); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Artifacts.TitleColumn) == "" {
		return fmt.Errorf("TITLE_COLUMN is required")
	}
	return nil
}

func validateArtifactExt(name, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedArtifactExts[ext] {
		return fmt.Errorf("%s must be a .parquet or .csv file, got %q", name, path)
	}
	return nil
}

// validStrategies defines the allowed similarity strategies
var validStrategies = map[string]bool{
	"eager": true,
	"lazy":  true,
	"auto":  true,
}

// validateRecommend validates recommendation engine configuration
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultK < 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be non-negative, got %d", r.DefaultK)
	}
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be positive, got %d", r.MaxK)
	}
	if r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K (%d) must not exceed RECOMMEND_MAX_K (%d)", r.DefaultK, r.MaxK)
	}
	if !validStrategies[r.Strategy] {
		return fmt.Errorf("RECOMMEND_STRATEGY must be one of: eager, lazy, auto")
	}
	if r.EagerMaxRows < 0 {
		return fmt.Errorf("RECOMMEND_EAGER_MAX_ROWS must be non-negative, got %d", r.EagerMaxRows)
	}
	if r.Workers < 0 {
		return fmt.Errorf("RECOMMEND_WORKERS must be non-negative, got %d", r.Workers)
	}

	if r.Reduction.Enabled {
		if r.Reduction.Rank < 1 {
			return fmt.Errorf("RECOMMEND_RANK must be positive, got %d", r.Reduction.Rank)
		}
		if r.Reduction.Oversamples < 0 {
			return fmt.Errorf("RECOMMEND_OVERSAMPLES must be non-negative, got %d", r.Reduction.Oversamples)
		}
		if r.Reduction.PowerIterations < 0 {
			return fmt.Errorf("RECOMMEND_POWER_ITERATIONS must be non-negative, got %d", r.Reduction.PowerIterations)
		}
	}

	if r.Cache.Enabled {
		if r.Cache.MaxEntries < 1 {
			return fmt.Errorf("RECOMMEND_CACHE_SIZE must be positive, got %d", r.Cache.MaxEntries)
		}
		if r.Cache.TTL <= 0 {
			return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive, got %v", r.Cache.TTL)
		}
	}
	return nil
}

// validateCatalog validates catalog lookup policy
func (c *Config) validateCatalog() error {
	if c.Catalog.MinVotes < 0 {
		return fmt.Errorf("CATALOG_MIN_VOTES must be non-negative, got %d", c.Catalog.MinVotes)
	}
	return nil
}

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && c.IsProduction() {
			return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
		}
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if c.Logging.Level != "" && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
