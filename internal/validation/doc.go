// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package validation validates API request parameters with go-playground/validator.

A single validator instance is shared (it caches struct metadata). Field names
in messages come from json tags, so a negative k reports "k must be greater
than or equal to 0".

	req := validation.RecommendRequest{Title: title, K: k}
	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation
