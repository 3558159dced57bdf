// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// CachePurger drops expired memoized results. *recommend.Engine implements it.
type CachePurger interface {
	PurgeExpiredCache() (removed, remaining int)
}

// DefaultPurgeInterval is used when CacheServiceConfig.Interval is not positive.
const DefaultPurgeInterval = 5 * time.Minute

// CacheServiceConfig holds configuration for the cache maintenance service.
type CacheServiceConfig struct {
	// Interval between purge passes.
	Interval time.Duration
}

// CacheService periodically purges expired recommendation results so the
// cache does not hold stale entries until they are next looked up.
type CacheService struct {
	purger CachePurger
	config CacheServiceConfig
	logger zerolog.Logger
	name   string
}

// NewCacheService creates a new cache maintenance service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheService(purger CachePurger, cfg CacheServiceConfig, logger zerolog.Logger) *CacheService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPurgeInterval
	}
	return &CacheService{
		purger: purger,
		config: cfg,
		logger: logger.With().Str("service", "recommend-cache").Logger(),
		name:   "recommend-cache",
	}
}

// Serve implements suture.Service.
func (s *CacheService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("cache maintenance starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache maintenance shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.purge()
		}
	}
}

func (s *CacheService) purge() {
	removed, remaining := s.purger.PurgeExpiredCache()
	metrics.RecordCachePurge(removed, remaining)
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Int("remaining", remaining).Msg("purged expired recommendations")
	}
}

// String returns the service name for logging.
func (s *CacheService) String() string {
	return s.name
}
