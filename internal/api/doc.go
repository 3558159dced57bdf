// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api exposes the recommendation engine and the catalog lookups over HTTP.

# Endpoints

	GET /api/v1/recommendations/{title}?k=N     top-K similar titles
	GET /api/v1/catalog/releases/month/{month}  releases in a month (enero, march, 3)
	GET /api/v1/catalog/releases/weekday/{day}  releases on a weekday (lunes, friday)
	GET /api/v1/catalog/titles/{title}/score    popularity and release year
	GET /api/v1/catalog/titles/{title}/votes    vote count, average and threshold
	GET /api/v1/catalog/actors/{name}           film count and returns for an actor
	GET /api/v1/engine/status                   build and query statistics
	GET /api/v1/health/live                     liveness probe
	GET /api/v1/health/ready                    readiness probe
	GET /metrics                                Prometheus exposition

# Response Format

Every JSON endpoint returns the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}
	}

Errors set success to false and carry a machine-readable code:

	{
	  "success": false,
	  "error": {"code": "TITLE_NOT_FOUND", "message": "title not found"}
	}

Recommendation lookups match titles exactly; catalog lookups are case-insensitive.
*/
package api
