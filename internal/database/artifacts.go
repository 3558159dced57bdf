// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

// ArtifactSource reads the precomputed recommendation artifacts through
// DuckDB. It implements recommend.TitleIndexSource, recommend.MatrixSource
// and recommend.ReducedSource.
type ArtifactSource struct {
	db  *DB
	cfg config.ArtifactsConfig
}

var (
	_ recommend.TitleIndexSource = (*ArtifactSource)(nil)
	_ recommend.MatrixSource     = (*ArtifactSource)(nil)
	_ recommend.ReducedSource    = (*ArtifactSource)(nil)
)

// NewArtifactSource creates an artifact reader for the configured paths.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func NewArtifactSource(db *DB, cfg config.ArtifactsConfig) *ArtifactSource {
	if cfg.TitleColumn == "" {
		cfg.TitleColumn = "title"
	}
	return &ArtifactSource{db: db, cfg: cfg}
}

// HasReduced reports whether a precomputed reduced matrix is configured.
func (s *ArtifactSource) HasReduced() bool {
	return s.cfg.ReducedPath != ""
}

// Titles returns the title index in file order. NULL titles become empty
// strings, which never match a lookup.
func (s *ArtifactSource) Titles(ctx context.Context) ([]string, error) {
	src, err := scanSource(s.cfg.TitleIndexPath)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s", quoteIdent(s.cfg.TitleColumn), src)
	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query title index: %w", err)
	}
	defer closeWithLog(rows, "title index rows")

	var titles []string
	for rows.Next() {
		var title sql.NullString
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title index: %w", err)
	}
	return titles, nil
}

// Weights returns the (row, col, weight) entries of the term-weight matrix.
func (s *ArtifactSource) Weights(ctx context.Context) ([]recommend.Triplet, error) {
	return s.readTriplets(ctx, s.cfg.MatrixPath, "weight")
}

// Reduced returns the (row, col, value) entries of the precomputed reduced matrix.
func (s *ArtifactSource) Reduced(ctx context.Context) ([]recommend.Triplet, error) {
	return s.readTriplets(ctx, s.cfg.ReducedPath, "value")
}

func (s *ArtifactSource) readTriplets(ctx context.Context, path, valueColumn string) ([]recommend.Triplet, error) {
	src, err := scanSource(path)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT CAST("row" AS BIGINT), CAST(col AS BIGINT), CAST(%s AS DOUBLE) FROM %s`,
		quoteIdent(valueColumn), src)
	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer closeWithLog(rows, "triplet rows")

	var out []recommend.Triplet
	for rows.Next() {
		var r, c sql.NullInt64
		var v sql.NullFloat64
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("scan entry %d: %w", len(out), err)
		}
		if !r.Valid || !c.Valid || !v.Valid {
			return nil, fmt.Errorf("entry %d has a NULL field", len(out))
		}
		out = append(out, recommend.Triplet{Row: int(r.Int64), Col: int(c.Int64), Weight: v.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", path, err)
	}
	return out, nil
}

// VocabularySize returns the number of vectorizer terms, or 0 when no
// vocabulary artifact is configured. Column indices must cover 0..V-1 exactly once.
func (s *ArtifactSource) VocabularySize(ctx context.Context) (int, error) {
	if s.cfg.VocabularyPath == "" {
		return 0, nil
	}
	src, err := scanSource(s.cfg.VocabularyPath)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT count(*), count(DISTINCT col), coalesce(min(col), 0), coalesce(max(col), -1) FROM %s`, src)
	var total, distinct, minCol, maxCol int64
	if err := s.db.conn.QueryRowContext(ctx, query).Scan(&total, &distinct, &minCol, &maxCol); err != nil {
		return 0, fmt.Errorf("query vocabulary: %w", err)
	}

	if total == 0 {
		return 0, fmt.Errorf("vocabulary is empty")
	}
	if minCol != 0 || distinct != total || maxCol+1 != total {
		return 0, fmt.Errorf("vocabulary columns must be 0..%d without gaps or duplicates (min %d, max %d, %d distinct)",
			total-1, minCol, maxCol, distinct)
	}
	return int(total), nil
}
