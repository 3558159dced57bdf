// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateIDs(t *testing.T) {
	rid := GenerateRequestID()
	if _, err := uuid.Parse(rid); err != nil {
		t.Errorf("GenerateRequestID() = %q is not a UUID: %v", rid, err)
	}
	if rid == GenerateRequestID() {
		t.Error("request IDs should be unique")
	}

	cid := GenerateCorrelationID()
	if len(cid) != 8 {
		t.Errorf("GenerateCorrelationID() length = %d, want 8", len(cid))
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Fatal("empty context should carry no IDs")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "corr-1" {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
}

func TestCtx_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithCorrelationID(ctx, "abcd1234")

	Ctx(ctx).Info().Msg("handled")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["request_id"] != "req-42" {
		t.Errorf("request_id = %v", m["request_id"])
	}
	if m["correlation_id"] != "abcd1234" {
		t.Errorf("correlation_id = %v", m["correlation_id"])
	}
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	buf := captureGlobal(t, "info")

	Ctx(context.Background()).Info().Msg("global")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if _, ok := m["request_id"]; ok {
		t.Error("request_id should be absent without a request ID in context")
	}
	if m["message"] != "global" {
		t.Errorf("message = %v", m["message"])
	}
}
