// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
)

// Gateway turns title queries into ranked recommendations.
// All state it reads is immutable, so Recommend needs no locking.
type Gateway struct {
	store  *FeatureStore
	index  *Index
	limits LimitsConfig
	cache  *cache.LRU[*Recommendation]
	logger zerolog.Logger

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
	errorCount    atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// NewGateway wires a gateway over a built store and index.
func NewGateway(store *FeatureStore, index *Index, cfg *Config, logger zerolog.Logger) *Gateway {
	g := &Gateway{
		store:  store,
		index:  index,
		limits: cfg.Limits,
		logger: logger.With().Str("component", "gateway").Logger(),
	}
	if cfg.Cache.Enabled {
		g.cache = cache.NewLRU[*Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return g
}

// Recommend returns the nearest titles to req.Title.
// An unknown title is a *NotFoundError and a negative K wraps ErrInvalidK.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (g *Gateway) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	g.requestCount.Add(1)

	k, err := g.effectiveK(req.K)
	if err != nil {
		g.errorCount.Add(1)
		return nil, err
	}

	logger := g.logger.With().Str("request_id", req.RequestID).Str("title", req.Title).Int("k", k).Logger()

	row, ok := g.store.RowIndexOf(req.Title)
	if !ok {
		g.notFoundCount.Add(1)
		logger.Debug().Msg("title not in catalog")
		return nil, &NotFoundError{Title: req.Title}
	}

	key := strconv.Itoa(k) + "\x00" + req.Title
	if rec := g.cached(key); rec != nil {
		logger.Debug().Msg("cache hit")
		return rec, nil
	}

	if err := ctx.Err(); err != nil {
		g.errorCount.Add(1)
		return nil, err
	}

	neighbors, err := g.index.TopK(row, k)
	if err != nil {
		g.errorCount.Add(1)
		return nil, fmt.Errorf("rank neighbors of row %d: %w", row, err)
	}

	rec := &Recommendation{
		Title: req.Title,
		K:     k,
		Items: make([]Item, len(neighbors)),
	}
	for i, n := range neighbors {
		rec.Items[i] = Item{Title: g.store.Title(n.Row), Score: n.Score, Row: n.Row}
	}

	if g.cache != nil {
		g.cache.Add(key, copyRecommendation(rec))
	}

	logger.Debug().Int("row", row).Int("returned", len(rec.Items)).Msg("recommendation complete")
	return rec, nil
}

// Stats returns cumulative counters.
func (g *Gateway) Stats() GatewayStats {
	return GatewayStats{
		RequestCount:  g.requestCount.Load(),
		NotFoundCount: g.notFoundCount.Load(),
		ErrorCount:    g.errorCount.Load(),
		CacheHits:     g.cacheHits.Load(),
		CacheMisses:   g.cacheMisses.Load(),
	}
}

// PurgeExpiredCache drops expired memoized results. It returns the number
// removed and the entries left, both zero when caching is disabled.
func (g *Gateway) PurgeExpiredCache() (removed, remaining int) {
	if g.cache == nil {
		return 0, 0
	}
	removed = g.cache.PurgeExpired()
	return removed, g.cache.Len()
}

func (g *Gateway) effectiveK(k *int) (int, error) {
	if k == nil {
		return g.limits.DefaultK, nil
	}
	if *k < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidK, *k)
	}
	if g.limits.MaxK > 0 && *k > g.limits.MaxK {
		return g.limits.MaxK, nil
	}
	return *k, nil
}

func (g *Gateway) cached(key string) *Recommendation {
	if g.cache == nil {
		return nil
	}
	rec, ok := g.cache.Get(key)
	if !ok {
		g.cacheMisses.Add(1)
		return nil
	}
	g.cacheHits.Add(1)
	out := copyRecommendation(rec)
	out.CacheHit = true
	return out
}

// copyRecommendation detaches a result from the cache so callers may modify it.
func copyRecommendation(rec *Recommendation) *Recommendation {
	items := make([]Item, len(rec.Items))
	copy(items, rec.Items)
	return &Recommendation{Title: rec.Title, K: rec.K, Items: items}
}
