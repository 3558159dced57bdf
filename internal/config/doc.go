// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides configuration management for Marquee.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/marquee/config.yaml, /etc/marquee/config.yml
 3. Environment variables, mapped explicitly to config paths

# Environment Variables

Server:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT

Logging:
  - LOG_LEVEL (trace, debug, info, warn, error), LOG_FORMAT (json, console), LOG_CALLER

Database:
  - DUCKDB_PATH (default ":memory:"), DUCKDB_MAX_MEMORY, DUCKDB_THREADS

Artifacts (Parquet or CSV):
  - CATALOG_PATH, TITLE_INDEX_PATH, TITLE_COLUMN, MATRIX_PATH
  - VOCABULARY_PATH, REDUCED_PATH (optional)

Recommendation engine:
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K
  - RECOMMEND_STRATEGY (eager, lazy, auto), RECOMMEND_EAGER_MAX_ROWS, RECOMMEND_WORKERS
  - RECOMMEND_REDUCTION, RECOMMEND_RANK, RECOMMEND_OVERSAMPLES,
    RECOMMEND_POWER_ITERATIONS, RECOMMEND_SEED
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_SIZE, RECOMMEND_CACHE_TTL

Catalog:
  - CATALOG_MIN_VOTES (default 2000)

Security:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT

# Example YAML

	server:
	  port: 8000
	artifacts:
	  catalog_path: /data/movies.parquet
	  title_index_path: /data/titles.parquet
	  matrix_path: /data/tfidf.parquet
	recommend:
	  strategy: auto
	  reduction:
	    enabled: true
	    rank: 500

# Validation

LoadWithKoanf calls Validate before returning. Errors name the environment
variable to fix, e.g. "RECOMMEND_STRATEGY must be one of: eager, lazy, auto".
*/
package config
