// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/recommend"
)

const readinessPingTimeout = 2 * time.Second

// HealthLive handles liveness probes. It answers 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. It answers 503 unless the engine is
// built and the database responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	engineReady := h.recommender != nil

	dbConnected := false
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
		dbConnected = h.db.Ping(ctx) == nil
		cancel()
	}

	ready := engineReady && dbConnected
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	NewResponseWriter(w, r).SuccessWithStatus(status, map[string]interface{}{
		"ready":              ready,
		"engine_ready":       engineReady,
		"database_connected": dbConnected,
		"uptime":             time.Since(h.startTime).Seconds(),
	})
}

// EngineStatus is the payload of GET /api/v1/engine/status.
type EngineStatus struct {
	Build   recommend.BuildStats   `json:"build"`
	Queries recommend.GatewayStats `json:"queries"`
	Uptime  float64                `json:"uptime_seconds"`
}

// EngineStatusHandler reports how the engine was built and its query counters.
func (h *Handler) EngineStatusHandler(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.recommender == nil {
		rw.ServiceUnavailable("recommendation engine not ready")
		return
	}
	rw.Success(EngineStatus{
		Build:   h.recommender.Stats(),
		Queries: h.recommender.GatewayStats(),
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}
