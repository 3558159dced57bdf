// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// monthNumbers maps folded Spanish and English month names to 1-12.
var monthNumbers = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
	"julio": 7, "agosto": 8, "septiembre": 9, "setiembre": 9, "octubre": 10,
	"noviembre": 11, "diciembre": 12,

	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11,
	"december": 12,
}

// weekdayNumbers maps folded Spanish and English weekday names to 0 (Monday) - 6 (Sunday).
var weekdayNumbers = map[string]int{
	"lunes": 0, "martes": 1, "miercoles": 2, "jueves": 3, "viernes": 4,
	"sabado": 5, "domingo": 6,

	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3, "friday": 4,
	"saturday": 5, "sunday": 6,
}

// fold lowercases s and strips diacritics, so "Miércoles" becomes "miercoles".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// ParseMonth resolves a month name (Spanish or English, any case, accents
// optional) or a number 1-12.
func ParseMonth(name string) (int, error) {
	key := fold(name)
	if m, ok := monthNumbers[key]; ok {
		return m, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 12 {
		return n, nil
	}
	return 0, ErrInvalidMonth
}

// ParseWeekday resolves a weekday name (Spanish or English, any case, accents
// optional). Monday is 0.
func ParseWeekday(name string) (int, error) {
	if d, ok := weekdayNumbers[fold(name)]; ok {
		return d, nil
	}
	return 0, ErrInvalidWeekday
}
