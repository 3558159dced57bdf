// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. The typed errors below unwrap to these.
var (
	// ErrArtifactLoad indicates a precomputed artifact was missing, malformed, or inconsistent.
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrReduction indicates an invalid dimensionality reduction configuration.
	ErrReduction = errors.New("dimensionality reduction failed")

	// ErrNotFound indicates the requested title is not in the catalog.
	ErrNotFound = errors.New("title not found")

	// ErrInvalidK indicates a negative result count.
	ErrInvalidK = errors.New("k must be non-negative")

	// ErrRowOutOfRange indicates a query row outside [0, rows).
	ErrRowOutOfRange = errors.New("row index out of range")
)

// ArtifactLoadError is returned when a startup artifact cannot be used.
// It is always fatal: the engine is never published after one.
type ArtifactLoadError struct {
	// Artifact names the offending input, e.g. "title_index" or "feature_matrix".
	Artifact string
	// Reason is a short human readable description.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ArtifactLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Artifact, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Artifact, e.Reason)
}

// Unwrap returns the cause so both the sentinel and the cause match errors.Is.
func (e *ArtifactLoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrArtifactLoad, e.Err}
	}
	return []error{ErrArtifactLoad}
}

func artifactError(artifact, reason string, err error) *ArtifactLoadError {
	return &ArtifactLoadError{Artifact: artifact, Reason: reason, Err: err}
}

// ReductionError is returned when the requested rank cannot be fitted.
type ReductionError struct {
	Rank   int
	Rows   int
	Cols   int
	Reason string
}

func (e *ReductionError) Error() string {
	return fmt.Sprintf("reduce %dx%d to rank %d: %s", e.Rows, e.Cols, e.Rank, e.Reason)
}

func (e *ReductionError) Unwrap() error { return ErrReduction }

// NotFoundError is returned by the gateway when a title has no row.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("title not found: %q", e.Title)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
