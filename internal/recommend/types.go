// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "time"

// Request is a "recommend top-K for title" query.
type Request struct {
	// Title is matched exactly (case-sensitive) against the catalog.
	Title string

	// K is the number of results wanted. Nil means Limits.DefaultK.
	// Zero yields an empty list; values above Limits.MaxK are clamped.
	K *int

	// RequestID is used for log correlation only.
	RequestID string
}

// Item is one recommended movie.
type Item struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Row   int     `json:"row"`
}

// Recommendation is a successful result: the most similar titles in rank order,
// never containing the query row.
type Recommendation struct {
	// Title echoes the query title.
	Title string `json:"title"`

	// K is the effective K after defaulting and clamping.
	K int `json:"k"`

	// Items are ordered by score descending, then by row ascending.
	Items []Item `json:"items"`

	// CacheHit reports whether the result came from the gateway cache.
	CacheHit bool `json:"-"`
}

// Titles returns just the ranked titles.
func (r *Recommendation) Titles() []string {
	titles := make([]string, len(r.Items))
	for i, it := range r.Items {
		titles[i] = it.Title
	}
	return titles
}

// GatewayStats are cumulative query counters.
type GatewayStats struct {
	RequestCount  int64 `json:"request_count"`
	NotFoundCount int64 `json:"not_found_count"`
	ErrorCount    int64 `json:"error_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
}

// BuildStats describes how the engine was assembled.
type BuildStats struct {
	Rows           int      `json:"rows"`
	UniqueTitles   int      `json:"unique_titles"`
	VocabularySize int      `json:"vocabulary_size"`
	NonZeros       int      `json:"non_zeros"`
	Dimensions     int      `json:"dimensions"`
	Strategy       Strategy `json:"strategy"`

	// Reduced is true when similarity runs on the dense reduced matrix.
	Reduced                bool    `json:"reduced"`
	ReductionPrecomputed   bool    `json:"reduction_precomputed"`
	ExplainedVarianceRatio float64 `json:"explained_variance_ratio,omitempty"`

	LoadDuration   time.Duration `json:"load_duration"`
	ReduceDuration time.Duration `json:"reduce_duration"`
	IndexDuration  time.Duration `json:"index_duration"`
	ReadyAt        time.Time     `json:"ready_at"`
}
