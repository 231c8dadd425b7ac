// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Biology", "Biology"},
		{"newline escaped", "line1\nline2", "line1\\x0aline2"},
		{"carriage return escaped", "a\rb", "a\\x0db"},
		{"tab escaped", "a\tb", "a\\x09b"},
		{"del escaped", "a\x7fb", "a\\x7fb"},
		{"unicode preserved", "Zürich", "Zürich"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a == "" {
		t.Fatal("expected non-empty etag")
	}
	if a != b {
		t.Errorf("same payload produced different etags: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different payloads produced the same etag %q", a)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Biology", []string{"Biology"}},
		{"multiple", "Biology,Physics", []string{"Biology", "Physics"}},
		{"whitespace trimmed", " Biology , Physics ", []string{"Biology", "Physics"}},
		{"blank entries dropped", "Biology,,Physics,", []string{"Biology", "Physics"}},
		{"only separators", ",, ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCommaSeparated(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCommaSeparated(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
		def  int
		want int
	}{
		{"present", "/?limit=30", "limit", 10, 30},
		{"absent uses default", "/", "limit", 10, 10},
		{"non-numeric uses default", "/?limit=abc", "limit", 10, 10},
		{"negative parsed", "/?limit=-5", "limit", 10, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := getIntParam(r, tt.key, tt.def); got != tt.want {
				t.Errorf("getIntParam(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	if n, ok := parseOptionalInt("2021"); !ok || n != 2021 {
		t.Errorf("parseOptionalInt(2021) = %d, %v", n, ok)
	}
	if _, ok := parseOptionalInt(""); ok {
		t.Error("empty string should not parse")
	}
	if _, ok := parseOptionalInt("20x1"); ok {
		t.Error("malformed value should not parse")
	}
}
