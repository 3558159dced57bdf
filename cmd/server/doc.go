// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee answers "movies similar to this one" from precomputed TF-IDF term
weights, plus a handful of catalog lookups backed by DuckDB.

# Startup

Startup is one-shot and all-or-nothing:

 1. Configuration: koanf defaults, then config.yaml, then environment
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB (in memory by default)
 4. Catalog: movies table loaded from Parquet or CSV
 5. Engine: title index and term weights loaded, optional truncated SVD,
    similarity index built eagerly or lazily
 6. Supervisor tree: HTTP server and cache maintenance

Any failure before step 6 exits non-zero without opening the listener.

# Supervision

	marquee
	├── maintenance-layer
	│   └── recommend-cache
	└── api-layer
	    └── http-server

# Configuration

Common environment variables:

	HTTP_PORT=8000
	CATALOG_PATH=/data/movies.parquet
	TITLE_INDEX_PATH=/data/titles.parquet
	MATRIX_PATH=/data/tfidf.parquet
	REDUCED_PATH=/data/reduced.parquet   # optional, skips SVD fitting
	RECOMMEND_RANK=500
	RECOMMEND_STRATEGY=auto              # eager, lazy, auto
	LOG_LEVEL=info

# Signals

SIGINT and SIGTERM cancel the supervisor context; the HTTP server drains
in-flight requests within server.shutdown_timeout before the database is
closed.
*/
package main
