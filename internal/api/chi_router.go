// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(ChiMiddlewareConfig{CORSOrigins: []string{"*"}, RateLimitDisabled: true})
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// SetupChi builds the HTTP handler.
//
// Global middleware order: request ID, real IP, panic recovery, access log,
// Prometheus, CORS, compression. Rate limiting applies to /api/v1 only so
// probes and scrapes are never throttled.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound(ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	h := router.handler

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders)

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/recommendations/{title}", h.Recommendations)
			r.Get("/engine/status", h.EngineStatusHandler)

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/releases/month/{month}", h.ReleasesByMonth)
				r.Get("/releases/weekday/{day}", h.ReleasesByWeekday)
				r.Get("/titles/{title}/score", h.TitleScore)
				r.Get("/titles/{title}/votes", h.TitleVotes)
				r.Get("/actors/{name}", h.ActorReturns)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// accessLog logs one line per request through the request-scoped logger.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("http request")
	})
}
