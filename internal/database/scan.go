// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// scanSource returns the DuckDB table function that reads path, chosen by
// file extension. The file must exist.
func scanSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("artifact path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	literal := quoteLiteral(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet(" + literal + ")", nil
	case ".csv":
		return "read_csv_auto(" + literal + ", header = true)", nil
	default:
		return "", fmt.Errorf("unsupported artifact format %q (want .parquet or .csv)", filepath.Ext(path))
	}
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent renders s as a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
