// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePurger struct {
	calls atomic.Int32
	ran   chan struct{}
}

func (f *fakePurger) PurgeExpiredCache() (int, int) {
	f.calls.Add(1)
	select {
	case f.ran <- struct{}{}:
	default:
	}
	return 1, 4
}

func TestCacheService_Defaults(t *testing.T) {
	svc := NewCacheService(&fakePurger{}, CacheServiceConfig{}, zerolog.Nop())
	if svc.config.Interval != DefaultPurgeInterval {
		t.Errorf("Interval = %v, want %v", svc.config.Interval, DefaultPurgeInterval)
	}
	if svc.String() != "recommend-cache" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestCacheService_PurgesOnTick(t *testing.T) {
	purger := &fakePurger{ran: make(chan struct{}, 8)}
	svc := NewCacheService(purger, CacheServiceConfig{Interval: 5 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-purger.ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("purge ran %d times, want at least 2", purger.calls.Load())
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
