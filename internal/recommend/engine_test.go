// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

var catalogTitles = []string{"A", "B", "C", "Heat", "Alien", "Aliens", "Up", "Cars"}

func catalogRows() [][]float64 {
	return [][]float64{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 0},
		{1, 0, 0, 1},
		{0, 2, 1, 0},
		{0, 2, 1, 1},
		{1, 2, 3, 4},
		{0, 0, 0, 3},
	}
}

func catalogSources(rows [][]float64) Sources {
	return Sources{
		Titles: fakeTitles{titles: catalogTitles[:len(rows)]},
		Matrix: fakeMatrix{entries: triplets(rows), vocab: len(rows[0])},
	}
}

func rawConfig() *Config {
	cfg := DefaultConfig()
	cfg.Reduction.Enabled = false
	return cfg
}

func buildTestEngine(t *testing.T, cfg *Config, src Sources) *Engine {
	t.Helper()
	eng, err := Build(context.Background(), cfg, src, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return eng
}

func TestEngine_RecommendIdenticalThenOrthogonal(t *testing.T) {
	rows := [][]float64{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}}
	eng := buildTestEngine(t, rawConfig(), catalogSources(rows))

	rec, err := eng.Recommend(context.Background(), Request{Title: "A", K: intPtr(2)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := rec.Titles(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Titles() = %v, want [B C]", got)
	}
	if rec.Items[0].Score != 1 || rec.Items[1].Score != 0 {
		t.Errorf("scores = %v, %v, want 1, 0", rec.Items[0].Score, rec.Items[1].Score)
	}
}

func TestEngine_RecommendNotFound(t *testing.T) {
	eng := buildTestEngine(t, rawConfig(), catalogSources(catalogRows()))

	rec, err := eng.Recommend(context.Background(), Request{Title: "Unknown Title", K: intPtr(5)})
	if rec != nil {
		t.Errorf("Recommend() = %+v, want nil result", rec)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Recommend() error = %v, want *NotFoundError", err)
	}
	if nf.Title != "Unknown Title" {
		t.Errorf("NotFoundError.Title = %q", nf.Title)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false")
	}

	// Recommendation lookup is exact, so case variants are not found either.
	if _, err := eng.Recommend(context.Background(), Request{Title: "heat"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Recommend(heat) error = %v, want ErrNotFound", err)
	}
	if got := eng.GatewayStats().NotFoundCount; got != 2 {
		t.Errorf("NotFoundCount = %d, want 2", got)
	}
}

func TestEngine_RecommendK(t *testing.T) {
	cfg := rawConfig()
	cfg.Limits.MaxK = 6
	eng := buildTestEngine(t, cfg, catalogSources(catalogRows()))

	tests := []struct {
		name    string
		k       *int
		wantK   int
		wantLen int
	}{
		{"default", nil, 5, 5},
		{"zero", intPtr(0), 0, 0},
		{"explicit", intPtr(3), 3, 3},
		{"clamped to max", intPtr(50), 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := eng.Recommend(context.Background(), Request{Title: "Heat", K: tt.k})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if rec.K != tt.wantK {
				t.Errorf("K = %d, want %d", rec.K, tt.wantK)
			}
			if len(rec.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(rec.Items), tt.wantLen)
			}
			if rec.Items == nil || rec.Titles() == nil {
				t.Error("empty result must be an empty list, not nil")
			}
			for _, it := range rec.Items {
				if it.Title == "Heat" {
					t.Error("result contains the query title")
				}
			}
		})
	}

	t.Run("negative", func(t *testing.T) {
		_, err := eng.Recommend(context.Background(), Request{Title: "Heat", K: intPtr(-1)})
		if !errors.Is(err, ErrInvalidK) {
			t.Errorf("Recommend() error = %v, want ErrInvalidK", err)
		}
	})
}

func TestEngine_RecommendIdempotent(t *testing.T) {
	for _, cacheEnabled := range []bool{false, true} {
		cfg := rawConfig()
		cfg.Cache.Enabled = cacheEnabled
		eng := buildTestEngine(t, cfg, catalogSources(catalogRows()))

		first, err := eng.Recommend(context.Background(), Request{Title: "Alien", K: intPtr(4)})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		second, err := eng.Recommend(context.Background(), Request{Title: "Alien", K: intPtr(4)})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}

		if !reflect.DeepEqual(first.Items, second.Items) || first.K != second.K || first.Title != second.Title {
			t.Errorf("cache=%v: results differ: %+v vs %+v", cacheEnabled, first, second)
		}
		if second.CacheHit != cacheEnabled {
			t.Errorf("cache=%v: CacheHit = %v", cacheEnabled, second.CacheHit)
		}
	}
}

func TestEngine_CachedResultIsDetached(t *testing.T) {
	eng := buildTestEngine(t, rawConfig(), catalogSources(catalogRows()))

	first, _ := eng.Recommend(context.Background(), Request{Title: "Up", K: intPtr(3)})
	want := append([]Item(nil), first.Items...)
	first.Items[0].Title = "tampered"

	second, _ := eng.Recommend(context.Background(), Request{Title: "Up", K: intPtr(3)})
	if !reflect.DeepEqual(second.Items, want) {
		t.Errorf("cached result was modified through a returned value: %v", second.Items)
	}

	stats := eng.GatewayStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.RequestCount != 2 {
		t.Errorf("GatewayStats() = %+v, want 1 hit, 1 miss, 2 requests", stats)
	}
}

func TestEngine_PurgeExpiredCache(t *testing.T) {
	eng := buildTestEngine(t, rawConfig(), catalogSources(catalogRows()))
	if _, err := eng.Recommend(context.Background(), Request{Title: "Up", K: intPtr(2)}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if removed, remaining := eng.PurgeExpiredCache(); removed != 0 || remaining != 1 {
		t.Errorf("PurgeExpiredCache() = (%d, %d), want (0, 1)", removed, remaining)
	}

	cfg := rawConfig()
	cfg.Cache.Enabled = false
	uncached := buildTestEngine(t, cfg, catalogSources(catalogRows()))
	if removed, remaining := uncached.PurgeExpiredCache(); removed != 0 || remaining != 0 {
		t.Errorf("uncached PurgeExpiredCache() = (%d, %d), want (0, 0)", removed, remaining)
	}
}

func TestEngine_Concurrent(t *testing.T) {
	eng := buildTestEngine(t, rawConfig(), catalogSources(catalogRows()))
	want, err := eng.Recommend(context.Background(), Request{Title: "Cars"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	mismatches := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := catalogTitles[i%len(catalogTitles)]
			rec, err := eng.Recommend(context.Background(), Request{Title: title})
			if err != nil || len(rec.Items) != 5 {
				mu.Lock()
				mismatches++
				mu.Unlock()
				return
			}
			if title == "Cars" && !reflect.DeepEqual(rec.Items, want.Items) {
				mu.Lock()
				mismatches++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if mismatches != 0 {
		t.Errorf("%d concurrent requests failed or differed", mismatches)
	}
}

func TestBuild_WithReduction(t *testing.T) {
	rows := lowRankRows()
	titles := make([]string, len(rows))
	for i := range titles {
		titles[i] = string(rune('a' + i))
	}

	cfg := DefaultConfig()
	cfg.Reduction.Rank = 2
	eng := buildTestEngine(t, cfg, Sources{
		Titles: fakeTitles{titles: titles},
		Matrix: fakeMatrix{entries: triplets(rows)},
	})

	stats := eng.Stats()
	if !stats.Reduced || stats.ReductionPrecomputed {
		t.Errorf("Reduced = %v, Precomputed = %v, want true, false", stats.Reduced, stats.ReductionPrecomputed)
	}
	if stats.Dimensions != 2 || stats.VocabularySize != 10 || stats.Rows != 12 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.Strategy != StrategyEager {
		t.Errorf("Strategy = %q, want eager for a small catalog", stats.Strategy)
	}
	if eng.Store().RowCount() != 12 || eng.Index().Dims() != 2 || eng.Config().Reduction.Rank != 2 {
		t.Errorf("rows = %d, index dims = %d, rank = %d; want 12, 2, 2",
			eng.Store().RowCount(), eng.Index().Dims(), eng.Config().Reduction.Rank)
	}

	rec, err := eng.Recommend(context.Background(), Request{Title: "a", K: intPtr(3)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(rec.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(rec.Items))
	}
}

func TestBuild_WithPrecomputedReduction(t *testing.T) {
	src := catalogSources([][]float64{{1, 0}, {0, 1}, {1, 1}})
	src.Reduced = fakeReduced{entries: []Triplet{
		{Row: 0, Col: 0, Weight: 1},
		{Row: 1, Col: 0, Weight: 1},
		{Row: 2, Col: 0, Weight: -1},
	}}
	eng := buildTestEngine(t, DefaultConfig(), src)

	if !eng.Stats().ReductionPrecomputed || eng.Stats().Dimensions != 1 {
		t.Errorf("Stats() = %+v, want precomputed 1-d reduction", eng.Stats())
	}
	rec, err := eng.Recommend(context.Background(), Request{Title: "A", K: intPtr(2)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := rec.Titles(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Titles() = %v, want [B C]", got)
	}
	if rec.Items[1].Score != -1 {
		t.Errorf("score of C = %v, want -1", rec.Items[1].Score)
	}
}

func TestBuild_FailsFast(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func() *Config
		src     Sources
		wantErr error
	}{
		{
			name:    "artifact mismatch",
			cfg:     rawConfig,
			src:     Sources{Titles: fakeTitles{titles: []string{"A"}}, Matrix: fakeMatrix{entries: []Triplet{{Row: 1, Col: 0, Weight: 1}}}},
			wantErr: ErrArtifactLoad,
		},
		{
			name: "rank too large",
			cfg: func() *Config {
				cfg := DefaultConfig()
				cfg.Reduction.Rank = 500
				return cfg
			},
			src:     catalogSources(catalogRows()),
			wantErr: ErrReduction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := Build(context.Background(), tt.cfg(), tt.src, zerolog.Nop())
			if eng != nil {
				t.Error("Build() published an engine after failure")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	cfg := rawConfig()
	cfg.Similarity.Strategy = "sometimes"
	if _, err := Build(context.Background(), cfg, catalogSources(catalogRows()), zerolog.Nop()); err == nil {
		t.Error("Build() error = nil, want config error")
	}
}
