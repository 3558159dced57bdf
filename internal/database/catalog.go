// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// catalogTable holds the movie catalog loaded at startup.
const catalogTable = "movies"

// catalogColumns must all be present in the catalog artifact.
var catalogColumns = []string{
	"title", "release_date", "release_year", "popularity",
	"vote_count", "vote_average", "actor_name", "return",
}

var _ catalog.Store = (*DB)(nil)

// LoadCatalog materializes the catalog artifact into the movies table,
// replacing any previous contents, and returns the row count.
func (db *DB) LoadCatalog(ctx context.Context, path string) (int64, error) {
	src, err := scanSource(path)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	create := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s", catalogTable, src)
	if _, err := db.conn.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("load catalog %s: %w", path, err)
	}

	probe := "SELECT "
	for i, col := range catalogColumns {
		if i > 0 {
			probe += ", "
		}
		probe += quoteIdent(col)
	}
	probe += " FROM " + catalogTable + " LIMIT 0"
	rows, err := db.conn.QueryContext(ctx, probe)
	if err != nil {
		return 0, fmt.Errorf("catalog %s is missing required columns: %w", path, err)
	}
	closeQuietly(rows)

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT count(*) FROM "+catalogTable).Scan(&count); err != nil {
		return 0, fmt.Errorf("count catalog rows: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int64("rows", count).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return count, nil
}

// CountReleasesByMonth counts movies released in month (1-12). Unparseable
// release dates are ignored.
func (db *DB) CountReleasesByMonth(ctx context.Context, month int) (int64, error) {
	const query = `SELECT count(*) FROM movies
		WHERE month(TRY_CAST(release_date AS DATE)) = ?`
	return db.count(ctx, "month", query, month)
}

// CountReleasesByWeekday counts movies released on weekday (0 = Monday).
func (db *DB) CountReleasesByWeekday(ctx context.Context, weekday int) (int64, error) {
	const query = `SELECT count(*) FROM movies
		WHERE isodow(TRY_CAST(release_date AS DATE)) = ?`
	return db.count(ctx, "weekday", query, weekday+1)
}

func (db *DB) count(ctx context.Context, name, query string, arg int) (n int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery(name, time.Since(start), err) }()

	if err = db.conn.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count by %s: %w", name, err)
	}
	return n, nil
}

// FindTitle returns the first movie whose title matches case-insensitively,
// or catalog.ErrTitleNotFound.
func (db *DB) FindTitle(ctx context.Context, title string) (m *catalog.Movie, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, catalog.ErrTitleNotFound) {
			metrics.RecordCatalogQuery("title", time.Since(start), nil)
			return
		}
		metrics.RecordCatalogQuery("title", time.Since(start), err)
	}()

	const query = `SELECT
			CAST(title AS VARCHAR),
			coalesce(TRY_CAST(release_year AS BIGINT), 0),
			coalesce(TRY_CAST(popularity AS DOUBLE), 0),
			coalesce(TRY_CAST(vote_count AS BIGINT), 0),
			coalesce(TRY_CAST(vote_average AS DOUBLE), 0)
		FROM movies
		WHERE lower(CAST(title AS VARCHAR)) = lower(?)
		ORDER BY rowid
		LIMIT 1`

	var year int64
	m = &catalog.Movie{}
	err = db.conn.QueryRowContext(ctx, query, title).
		Scan(&m.Title, &year, &m.Popularity, &m.VoteCount, &m.VoteAverage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrTitleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find title: %w", err)
	}
	m.ReleaseYear = int(year)
	return m, nil
}

// ActorTotals returns the number of films whose cast contains actor
// (case-insensitive substring) and the sum of their returns.
func (db *DB) ActorTotals(ctx context.Context, actor string) (films int64, total float64, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("actor", time.Since(start), err) }()

	const query = `SELECT count(*), coalesce(sum(TRY_CAST("return" AS DOUBLE)), 0)
		FROM movies
		WHERE contains(lower(CAST(actor_name AS VARCHAR)), lower(?))`

	if err = db.conn.QueryRowContext(ctx, query, actor).Scan(&films, &total); err != nil {
		return 0, 0, fmt.Errorf("actor totals: %w", err)
	}
	return films, total, nil
}
