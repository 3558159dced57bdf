// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

const moviesCSV = `title,release_date,release_year,popularity,vote_count,vote_average,actor_name,return
Toy Story,1995-10-30,1995,21.95,5415,7.7,"Tom Hanks, Tim Allen",12.5
Heat,1995-12-15,1995,17.92,1886,7.7,"Al Pacino, Robert De Niro",3.05
Sabrina,1995-12-15,1995,6.68,141,6.2,"Harrison Ford, Julia Ormond",0
heat,2010-07-16,2010,0.5,3,5.0,Nobody Famous,
Cast Away,2000-12-22,2000,19.0,3000,7.5,Tom Hanks,5.5
Alien,1979-05-25,1979,23.38,4564,7.9,"Sigourney Weaver",10.0
Undated,,,,,,,
`

func setupCatalog(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	path := writeFixture(t, "movies.csv", moviesCSV)

	n, err := db.LoadCatalog(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if n != 7 {
		t.Fatalf("LoadCatalog() rows = %d, want 7", n)
	}
	return db
}

func TestLoadCatalog_MissingColumns(t *testing.T) {
	db := setupTestDB(t)
	path := writeFixture(t, "movies.csv", "title,release_date\nHeat,1995-12-15\n")

	if _, err := db.LoadCatalog(context.Background(), path); err == nil {
		t.Fatal("LoadCatalog() should reject a catalog without required columns")
	}
}

func TestCountReleasesByMonth(t *testing.T) {
	db := setupCatalog(t)

	tests := []struct {
		month int
		want  int64
	}{
		{12, 3},
		{10, 1},
		{5, 1},
		{7, 1},
		{1, 0},
	}
	for _, tt := range tests {
		got, err := db.CountReleasesByMonth(context.Background(), tt.month)
		if err != nil {
			t.Fatalf("CountReleasesByMonth(%d) error = %v", tt.month, err)
		}
		if got != tt.want {
			t.Errorf("CountReleasesByMonth(%d) = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestCountReleasesByWeekday(t *testing.T) {
	db := setupCatalog(t)

	tests := []struct {
		weekday int
		want    int64
	}{
		{0, 1}, // Monday: Toy Story
		{4, 5}, // Friday: Heat, Sabrina, heat, Cast Away, Alien
		{6, 0},
	}
	for _, tt := range tests {
		got, err := db.CountReleasesByWeekday(context.Background(), tt.weekday)
		if err != nil {
			t.Fatalf("CountReleasesByWeekday(%d) error = %v", tt.weekday, err)
		}
		if got != tt.want {
			t.Errorf("CountReleasesByWeekday(%d) = %d, want %d", tt.weekday, got, tt.want)
		}
	}
}

func TestFindTitle(t *testing.T) {
	db := setupCatalog(t)

	m, err := db.FindTitle(context.Background(), "HEAT")
	if err != nil {
		t.Fatalf("FindTitle() error = %v", err)
	}
	// First row wins for duplicate titles.
	if m.Title != "Heat" || m.ReleaseYear != 1995 || m.VoteCount != 1886 {
		t.Errorf("FindTitle() = %+v", m)
	}

	if _, err := db.FindTitle(context.Background(), "Heat 2"); !errors.Is(err, catalog.ErrTitleNotFound) {
		t.Errorf("FindTitle(missing) error = %v, want ErrTitleNotFound", err)
	}

	m, err = db.FindTitle(context.Background(), "undated")
	if err != nil {
		t.Fatalf("FindTitle(undated) error = %v", err)
	}
	if m.ReleaseYear != 0 || m.VoteCount != 0 {
		t.Errorf("NULL fields should read as zero, got %+v", m)
	}
}

func TestActorTotals(t *testing.T) {
	db := setupCatalog(t)

	films, total, err := db.ActorTotals(context.Background(), "tom hanks")
	if err != nil {
		t.Fatalf("ActorTotals() error = %v", err)
	}
	if films != 2 || total != 18.0 {
		t.Errorf("ActorTotals() = %d, %v; want 2, 18", films, total)
	}

	films, _, err = db.ActorTotals(context.Background(), "Meryl Streep")
	if err != nil {
		t.Fatalf("ActorTotals() error = %v", err)
	}
	if films != 0 {
		t.Errorf("films = %d, want 0", films)
	}
}

// TestCatalogService_DuckDB drives the catalog service against a real table.
func TestCatalogService_DuckDB(t *testing.T) {
	db := setupCatalog(t)
	svc := catalog.NewService(db, catalog.DefaultMinVotes)
	ctx := context.Background()

	rc, err := svc.ReleasesInMonth(ctx, "diciembre")
	if err != nil || rc.Count != 3 {
		t.Errorf("ReleasesInMonth(diciembre) = %+v, %v", rc, err)
	}

	rc, err = svc.ReleasesOnWeekday(ctx, "viernes")
	if err != nil || rc.Count != 5 {
		t.Errorf("ReleasesOnWeekday(viernes) = %+v, %v", rc, err)
	}

	tv, err := svc.TitleVotes(ctx, "heat")
	if err != nil {
		t.Fatalf("TitleVotes() error = %v", err)
	}
	if tv.Qualified || tv.VoteCount != 1886 {
		t.Errorf("TitleVotes(heat) = %+v, want unqualified with 1886 votes", tv)
	}

	ar, err := svc.ActorReturns(ctx, "Hanks")
	if err != nil {
		t.Fatalf("ActorReturns() error = %v", err)
	}
	if ar.Films != 2 || ar.AverageReturn != 9.0 {
		t.Errorf("ActorReturns(Hanks) = %+v", ar)
	}
}
