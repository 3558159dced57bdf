// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

// MaxTitleLength bounds title path parameters.
const MaxTitleLength = 500

// RecommendRequest is GET /api/v1/recommendations/{title}?k=N. K larger than
// the configured maximum is clamped by the engine, not rejected.
type RecommendRequest struct {
	Title string `json:"title" validate:"required,max=500"`
	K     *int   `json:"k" validate:"omitempty,gte=0"`
}

// TitleRequest is a catalog lookup by title.
type TitleRequest struct {
	Title string `json:"title" validate:"required,max=500"`
}

// ActorRequest is a catalog lookup by actor name.
type ActorRequest struct {
	Name string `json:"name" validate:"required,min=2,max=200"`
}

// PeriodRequest is a month or weekday name. Name resolution happens in the
// catalog package.
type PeriodRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}
