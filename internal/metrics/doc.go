// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics defines the Prometheus collectors exported on /metrics.

All collectors are registered on the default registry via promauto and are
prefixed with marquee_:

  - API: requests_total, request_duration_seconds, active_requests
  - Recommendations: recommend_requests_total{outcome},
    recommend_duration_seconds, recommend_cache_total{result}
  - Engine: startup_phase_duration_seconds{phase}, engine_rows, engine_dimensions
  - Catalog: catalog_query_duration_seconds{query}, catalog_query_errors_total

Callers use the Record* helpers rather than touching collectors directly:

	start := time.Now()
	rec, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(metrics.OutcomeOK, time.Since(start), rec.CacheHit)
*/
package metrics
