// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
)

// TitleIndexSource supplies catalog titles in row order.
type TitleIndexSource interface {
	Titles(ctx context.Context) ([]string, error)
}

// MatrixSource supplies the precomputed term-weight matrix in coordinate form.
type MatrixSource interface {
	// Weights returns the non-zero entries of the matrix.
	Weights(ctx context.Context) ([]Triplet, error)

	// VocabularySize returns the number of vectorizer terms, or 0 when no
	// vocabulary artifact is available and the width must be inferred.
	VocabularySize(ctx context.Context) (int, error)
}

// FeatureStore holds the sparse feature matrix and the title to row mapping.
// It is never mutated after construction and is safe for concurrent reads.
type FeatureStore struct {
	matrix *SparseMatrix
	titles []string
	index  map[string]int
}

// LoadFeatureStore reads both artifacts and checks that they describe the same rows.
// Any failure is an *ArtifactLoadError.
func LoadFeatureStore(ctx context.Context, matrixSrc MatrixSource, titleSrc TitleIndexSource) (*FeatureStore, error) {
	if titleSrc == nil {
		return nil, artifactError("title_index", "source not configured", nil)
	}
	if matrixSrc == nil {
		return nil, artifactError("feature_matrix", "source not configured", nil)
	}

	titles, err := titleSrc.Titles(ctx)
	if err != nil {
		return nil, artifactError("title_index", "read failed", err)
	}
	if len(titles) == 0 {
		return nil, artifactError("title_index", "no titles", nil)
	}

	entries, err := matrixSrc.Weights(ctx)
	if err != nil {
		return nil, artifactError("feature_matrix", "read failed", err)
	}
	vocab, err := matrixSrc.VocabularySize(ctx)
	if err != nil {
		return nil, artifactError("vocabulary", "read failed", err)
	}

	cols := vocab
	maxRow := -1
	for _, e := range entries {
		if e.Row > maxRow {
			maxRow = e.Row
		}
		if vocab == 0 && e.Col >= cols {
			cols = e.Col + 1
		}
	}
	if maxRow >= len(titles) {
		return nil, artifactError("feature_matrix",
			fmt.Sprintf("matrix has row %d but title index has %d rows", maxRow, len(titles)), nil)
	}
	if cols == 0 {
		return nil, artifactError("feature_matrix", "matrix has no columns", nil)
	}

	m, err := NewSparseMatrix(len(titles), cols, entries)
	if err != nil {
		return nil, artifactError("feature_matrix", "malformed matrix", err)
	}

	return NewFeatureStore(titles, m)
}

// NewFeatureStore pairs an already built matrix with its titles.
// When a title repeats, lookups resolve to its first row.
func NewFeatureStore(titles []string, m *SparseMatrix) (*FeatureStore, error) {
	if m == nil {
		return nil, artifactError("feature_matrix", "nil matrix", nil)
	}
	if m.Rows() != len(titles) {
		return nil, artifactError("feature_matrix",
			fmt.Sprintf("matrix has %d rows but title index has %d", m.Rows(), len(titles)), nil)
	}

	index := make(map[string]int, len(titles))
	for row, title := range titles {
		if _, seen := index[title]; !seen {
			index[title] = row
		}
	}

	return &FeatureStore{
		matrix: m,
		titles: append([]string(nil), titles...),
		index:  index,
	}, nil
}

// RowIndexOf returns the row for an exact, case-sensitive title match.
func (s *FeatureStore) RowIndexOf(title string) (int, bool) {
	row, ok := s.index[title]
	return row, ok
}

// RowCount returns the catalog size N.
func (s *FeatureStore) RowCount() int { return len(s.titles) }

// Title returns the title stored at row.
func (s *FeatureStore) Title(row int) string { return s.titles[row] }

// UniqueTitles returns the number of distinct titles.
func (s *FeatureStore) UniqueTitles() int { return len(s.index) }

// Matrix returns the sparse feature matrix.
func (s *FeatureStore) Matrix() *SparseMatrix { return s.matrix }
