// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Startup phases recorded by RecordStartupPhase.
const (
	PhaseConfig    = "config"
	PhaseDatabase  = "database"
	PhaseCatalog   = "catalog"
	PhaseFeatures  = "features"
	PhaseReduction = "reduction"
	PhaseIndex     = "index"
)

// Recommendation outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
	cacheResultHit    = "hit"
	cacheResultMiss   = "miss"
	errorTypeMaxChars = 50
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommend_requests_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // ok, not_found, invalid, error
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_recommend_duration_seconds",
			Help:    "Recommendation query latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RecommendCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommend_cache_total",
			Help: "Recommendation result cache lookups",
		},
		[]string{"result"}, // hit, miss
	)

	RecommendCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_recommend_cache_entries",
			Help: "Recommendation results currently memoized",
		},
	)

	RecommendCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_recommend_cache_expired_total",
			Help: "Memoized recommendation results dropped after their TTL",
		},
	)

	// Engine Metrics
	StartupPhaseDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_startup_phase_duration_seconds",
			Help: "Duration of each startup phase in seconds",
		},
		[]string{"phase"},
	)

	EngineRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_engine_rows",
			Help: "Number of titles in the recommendation index",
		},
	)

	EngineDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_engine_dimensions",
			Help: "Dimensionality of the vectors used for similarity",
		},
	)

	// Catalog Metrics
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_catalog_query_duration_seconds",
			Help:    "Duration of catalog queries against DuckDB in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	CatalogQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_catalog_query_errors_total",
			Help: "Total number of failed catalog queries",
		},
		[]string{"query", "error_type"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(outcome string, duration time.Duration, cacheHit bool) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome != OutcomeOK {
		return
	}
	if cacheHit {
		RecommendCacheTotal.WithLabelValues(cacheResultHit).Inc()
	} else {
		RecommendCacheTotal.WithLabelValues(cacheResultMiss).Inc()
	}
}

// RecordStartupPhase records how long a startup phase took.
func RecordStartupPhase(phase string, duration time.Duration) {
	StartupPhaseDuration.WithLabelValues(phase).Set(duration.Seconds())
}

// RecordCachePurge records a cache maintenance pass.
func RecordCachePurge(removed, remaining int) {
	RecommendCacheEvictions.Add(float64(removed))
	RecommendCacheEntries.Set(float64(remaining))
}

// SetEngineShape publishes the size of the built engine.
func SetEngineShape(rows, dimensions int) {
	EngineRows.Set(float64(rows))
	EngineDimensions.Set(float64(dimensions))
}

// RecordCatalogQuery records a catalog query. Error messages are truncated to
// keep label cardinality bounded.
func RecordCatalogQuery(query string, duration time.Duration, err error) {
	CatalogQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > errorTypeMaxChars {
			errorType = errorType[:errorTypeMaxChars]
		}
		CatalogQueryErrors.WithLabelValues(query, errorType).Inc()
	}
}
