// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMinVotes is the vote count a title needs for its average to be reported.
const DefaultMinVotes = 2000

// Service applies lookup policy on top of a Store.
type Service struct {
	store    Store
	minVotes int64
}

// NewService creates a catalog service. A negative minVotes falls back to DefaultMinVotes.
func NewService(store Store, minVotes int64) *Service {
	if minVotes < 0 {
		minVotes = DefaultMinVotes
	}
	return &Service{store: store, minVotes: minVotes}
}

// MinVotes returns the vote threshold in effect.
func (s *Service) MinVotes() int64 {
	return s.minVotes
}

// ReleasesInMonth counts movies released in the named month.
func (s *Service) ReleasesInMonth(ctx context.Context, name string) (*ReleaseCount, error) {
	month, err := ParseMonth(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	n, err := s.store.CountReleasesByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("count releases in month %d: %w", month, err)
	}
	return &ReleaseCount{Period: "month", Name: fold(name), Number: month, Count: n}, nil
}

// ReleasesOnWeekday counts movies released on the named weekday.
func (s *Service) ReleasesOnWeekday(ctx context.Context, name string) (*ReleaseCount, error) {
	day, err := ParseWeekday(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	n, err := s.store.CountReleasesByWeekday(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("count releases on weekday %d: %w", day, err)
	}
	return &ReleaseCount{Period: "weekday", Name: fold(name), Number: day, Count: n}, nil
}

// TitleScore returns the release year and popularity of the first title matching
// case-insensitively.
func (s *Service) TitleScore(ctx context.Context, title string) (*TitleScore, error) {
	m, err := s.findTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return &TitleScore{Title: m.Title, ReleaseYear: m.ReleaseYear, Popularity: m.Popularity}, nil
}

// TitleVotes returns vote information. Titles below the threshold still report
// their vote count, with Qualified false and no average.
func (s *Service) TitleVotes(ctx context.Context, title string) (*TitleVotes, error) {
	m, err := s.findTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	tv := &TitleVotes{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		VoteCount:   m.VoteCount,
		MinVotes:    s.minVotes,
	}
	if m.VoteCount >= s.minVotes {
		tv.Qualified = true
		tv.VoteAverage = m.VoteAverage
		tv.Message = fmt.Sprintf("%s (%d) has %d votes with an average of %.1f",
			m.Title, m.ReleaseYear, m.VoteCount, m.VoteAverage)
	} else {
		tv.Message = fmt.Sprintf("%s (%d) has %d votes, fewer than the %d required to report an average",
			m.Title, m.ReleaseYear, m.VoteCount, s.minVotes)
	}
	return tv, nil
}

// ActorReturns totals the returns of films whose cast matches name.
func (s *Service) ActorReturns(ctx context.Context, name string) (*ActorReturn, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrActorNotFound
	}
	films, total, err := s.store.ActorTotals(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("actor totals for %q: %w", name, err)
	}
	if films == 0 {
		return nil, fmt.Errorf("%w: %q", ErrActorNotFound, name)
	}
	return &ActorReturn{
		Actor:         name,
		Films:         films,
		TotalReturn:   total,
		AverageReturn: total / float64(films),
	}, nil
}

func (s *Service) findTitle(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleNotFound
	}
	m, err := s.store.FindTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find title %q: %w", title, err)
	}
	return m, nil
}
