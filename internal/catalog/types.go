// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
)

// Lookup errors. Store implementations return ErrTitleNotFound and
// ErrActorNotFound when a query matches no rows.
var (
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidWeekday = errors.New("invalid weekday")
	ErrTitleNotFound  = errors.New("title not found")
	ErrActorNotFound  = errors.New("actor not found")
)

// Store answers catalog queries. Title matching is case-insensitive and
// resolves to the first matching row; actor matching is a case-insensitive
// substring match.
type Store interface {
	// CountReleasesByMonth counts movies released in month (1-12).
	CountReleasesByMonth(ctx context.Context, month int) (int64, error)

	// CountReleasesByWeekday counts movies released on weekday (0 = Monday, 6 = Sunday).
	CountReleasesByWeekday(ctx context.Context, weekday int) (int64, error)

	// FindTitle returns the first movie matching title.
	FindTitle(ctx context.Context, title string) (*Movie, error)

	// ActorTotals returns film count and summed return across films featuring actor.
	ActorTotals(ctx context.Context, actor string) (films int64, totalReturn float64, err error)
}

// Movie is one catalog row as needed by the lookups.
type Movie struct {
	Title       string
	ReleaseYear int
	Popularity  float64
	VoteCount   int64
	VoteAverage float64
}

// ReleaseCount is the result of a month or weekday query.
type ReleaseCount struct {
	Period string `json:"period"` // "month" or "weekday"
	Name   string `json:"name"`
	Number int    `json:"number"`
	Count  int64  `json:"count"`
}

// TitleScore reports a title's release year and popularity.
type TitleScore struct {
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	Popularity  float64 `json:"popularity"`
}

// TitleVotes reports a title's votes. VoteAverage is only meaningful when
// Qualified is true.
type TitleVotes struct {
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	VoteCount   int64   `json:"vote_count"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	Qualified   bool    `json:"qualified"`
	MinVotes    int64   `json:"min_votes"`
	Message     string  `json:"message"`
}

// ActorReturn reports an actor's film count and returns.
type ActorReturn struct {
	Actor         string  `json:"actor"`
	Films         int64   `json:"films"`
	TotalReturn   float64 `json:"total_return"`
	AverageReturn float64 `json:"average_return"`
}
