// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog answers descriptive lookups over the movie table: releases
// per month or weekday, a title's popularity and votes, and an actor's returns.
//
// Month and weekday names are accepted in Spanish or English, in any case and
// with or without accents. Title lookups are case-insensitive, unlike the
// exact-match title index used for recommendations. The SQL lives in
// internal/database, which implements Store.
package catalog
