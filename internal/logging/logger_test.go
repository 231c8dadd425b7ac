// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTestLoggerCapturesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)

	l.Info().Str("endpoint", "Dashboard").Int("rows", 3).Msg("served")

	out := buf.String()
	if !strings.Contains(out, `"endpoint":"Dashboard"`) {
		t.Errorf("missing endpoint field in %q", out)
	}
	if !strings.Contains(out, `"rows":3`) {
		t.Errorf("missing rows field in %q", out)
	}
	if !strings.Contains(out, `"message":"served"`) {
		t.Errorf("missing message in %q", out)
	}
}

func TestSetLoggerRoutesGlobalEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(NewTestLogger(&buf))
	Info().Str("k", "v").Msg("routed")

	if !strings.Contains(buf.String(), "routed") {
		t.Errorf("global event not routed to replaced logger: %q", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("NewRequestID returned empty string")
	}

	ctx := WithRequestID(context.Background(), id)
	if got := RequestID(ctx); got != id {
		t.Errorf("RequestID = %q, want %q", got, id)
	}

	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID on bare context = %q, want empty", got)
	}
}

func TestRequestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}
