// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/validation"
)

// ReleasesByMonth handles GET /api/v1/catalog/releases/month/{month}.
func (h *Handler) ReleasesByMonth(w http.ResponseWriter, r *http.Request) {
	h.releaseCount(w, r, "month")
}

// ReleasesByWeekday handles GET /api/v1/catalog/releases/weekday/{day}.
func (h *Handler) ReleasesByWeekday(w http.ResponseWriter, r *http.Request) {
	h.releaseCount(w, r, "day")
}

func (h *Handler) releaseCount(w http.ResponseWriter, r *http.Request, param string) {
	rw := NewResponseWriter(w, r)
	if h.catalog == nil {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	req := validation.PeriodRequest{Name: pathParam(r, param)}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var (
		result *catalog.ReleaseCount
		err    error
	)
	if param == "month" {
		result, err = h.catalog.ReleasesInMonth(ctx, req.Name)
	} else {
		result, err = h.catalog.ReleasesOnWeekday(ctx, req.Name)
	}
	if err != nil {
		h.catalogError(rw, err)
		return
	}
	rw.Success(result)
}

// TitleScore handles GET /api/v1/catalog/titles/{title}/score.
func (h *Handler) TitleScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.catalog == nil {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}
	req := validation.TitleRequest{Title: pathParam(r, "title")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	score, err := h.catalog.TitleScore(ctx, req.Title)
	if err != nil {
		h.catalogError(rw, err)
		return
	}
	rw.Success(score)
}

// TitleVotes handles GET /api/v1/catalog/titles/{title}/votes.
// Titles under the vote threshold still answer 200 with qualified=false.
func (h *Handler) TitleVotes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.catalog == nil {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}
	req := validation.TitleRequest{Title: pathParam(r, "title")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	votes, err := h.catalog.TitleVotes(ctx, req.Title)
	if err != nil {
		h.catalogError(rw, err)
		return
	}
	rw.Success(votes)
}

// ActorReturns handles GET /api/v1/catalog/actors/{name}.
func (h *Handler) ActorReturns(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.catalog == nil {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}
	req := validation.ActorRequest{Name: pathParam(r, "name")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	ret, err := h.catalog.ActorReturns(ctx, req.Name)
	if err != nil {
		h.catalogError(rw, err)
		return
	}
	rw.Success(ret)
}

// catalogError maps catalog errors onto status codes.
func (h *Handler) catalogError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidMonth):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidMonth, err.Error())
	case errors.Is(err, catalog.ErrInvalidWeekday):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidWeekday, err.Error())
	case errors.Is(err, catalog.ErrTitleNotFound):
		rw.NotFound(ErrCodeTitleNotFound, "title not found")
	case errors.Is(err, catalog.ErrActorNotFound):
		rw.NotFound(ErrCodeActorNotFound, "actor not found")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "catalog query timed out")
	default:
		rw.InternalError(ErrCodeDatabaseError, err)
	}
}
