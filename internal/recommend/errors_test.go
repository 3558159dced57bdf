// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTypedErrors(t *testing.T) {
	cause := errors.New("no such file")

	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{"artifact with cause", artifactError("title_index", "read failed", cause), ErrArtifactLoad, "no such file"},
		{"artifact without cause", artifactError("feature_matrix", "no columns", nil), ErrArtifactLoad, "feature_matrix"},
		{"reduction", &ReductionError{Rank: 9, Rows: 4, Cols: 3, Reason: "too big"}, ErrReduction, "rank 9"},
		{"not found", &NotFoundError{Title: "Heat"}, ErrNotFound, `"Heat"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("startup: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want to contain %q", tt.err.Error(), tt.contains)
			}
		})
	}

	if !errors.Is(artifactError("x", "y", cause), cause) {
		t.Error("ArtifactLoadError does not unwrap to its cause")
	}
}
