// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// DefaultRequestTimeout bounds a single handler's work.
const DefaultRequestTimeout = 10 * time.Second

// Recommender answers similarity queries. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Recommendation, error)
	Stats() recommend.BuildStats
	GatewayStats() recommend.GatewayStats
}

// CatalogService answers catalog lookups. *catalog.Service implements it.
type CatalogService interface {
	ReleasesInMonth(ctx context.Context, name string) (*catalog.ReleaseCount, error)
	ReleasesOnWeekday(ctx context.Context, name string) (*catalog.ReleaseCount, error)
	TitleScore(ctx context.Context, title string) (*catalog.TitleScore, error)
	TitleVotes(ctx context.Context, title string) (*catalog.TitleVotes, error)
	ActorReturns(ctx context.Context, name string) (*catalog.ActorReturn, error)
}

// Pinger reports backing store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the HTTP API.
type Handler struct {
	recommender    Recommender
	catalog        CatalogService
	db             Pinger
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a Handler. Any dependency may be nil; the routes that
// need it then answer 503.
func NewHandler(rec Recommender, cat CatalogService, db Pinger) *Handler {
	return &Handler{
		recommender:    rec,
		catalog:        cat,
		db:             db,
		startTime:      time.Now(),
		requestTimeout: DefaultRequestTimeout,
	}
}

// SetRequestTimeout overrides DefaultRequestTimeout. Non-positive values are ignored.
func (h *Handler) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		h.requestTimeout = d
	}
}

// pathParam returns the decoded chi URL parameter. chi routes on RawPath when
// the request carried escapes like %2F, so the value needs one more unescape.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// writeValidationError renders a validator failure in the envelope.
func writeValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}
