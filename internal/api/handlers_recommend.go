// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// RecommendationResponse is the data payload of a successful recommendation.
type RecommendationResponse struct {
	Title  string           `json:"title"`
	K      int              `json:"k"`
	Titles []string         `json:"titles"`
	Items  []recommend.Item `json:"items"`
}

// Recommendations handles GET /api/v1/recommendations/{title}?k=N.
//
// The title must match the catalog exactly. k defaults to 5, is clamped to
// the configured maximum, and k=0 yields an empty list.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.recommender == nil {
		rw.ServiceUnavailable("recommendation engine not ready")
		return
	}

	req := validation.RecommendRequest{Title: pathParam(r, "title")}
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			metrics.RecordRecommendation(metrics.OutcomeInvalid, 0, false)
			rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, "k must be an integer",
				map[string]interface{}{"field": "k", "value": raw})
			return
		}
		req.K = &k
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordRecommendation(metrics.OutcomeInvalid, 0, false)
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	start := time.Now()
	rec, err := h.recommender.Recommend(ctx, recommend.Request{
		Title:     req.Title,
		K:         req.K,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	elapsed := time.Since(start)

	if err != nil {
		var nf *recommend.NotFoundError
		switch {
		case errors.As(err, &nf):
			metrics.RecordRecommendation(metrics.OutcomeNotFound, elapsed, false)
			rw.NotFound(ErrCodeTitleNotFound, "title not found")
		case errors.Is(err, recommend.ErrInvalidK):
			metrics.RecordRecommendation(metrics.OutcomeInvalid, elapsed, false)
			rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, err.Error(),
				map[string]interface{}{"field": "k"})
		case errors.Is(err, context.DeadlineExceeded):
			metrics.RecordRecommendation(metrics.OutcomeError, elapsed, false)
			rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "recommendation timed out")
		default:
			metrics.RecordRecommendation(metrics.OutcomeError, elapsed, false)
			rw.InternalError(ErrCodeInternalError, err)
		}
		return
	}

	metrics.RecordRecommendation(metrics.OutcomeOK, elapsed, rec.CacheHit)
	items := rec.Items
	if items == nil {
		items = []recommend.Item{}
	}
	rw.Success(RecommendationResponse{
		Title:  rec.Title,
		K:      rec.K,
		Titles: rec.Titles(),
		Items:  items,
	})
}
