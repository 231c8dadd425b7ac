// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"reflect"
	"testing"

	"github.com/preprintlabs/paperscope/internal/models"
)

func TestParseCitationSources(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []models.CitationSource
		ok   bool
	}{
		{
			name: "single quoted importer payload",
			raw:  `[{'doi': '10.1000/a', 'count': 3}, {'doi': '10.1000/b', 'count': 1}]`,
			want: []models.CitationSource{
				{DOI: "10.1000/a", Count: 3},
				{DOI: "10.1000/b", Count: 1},
			},
			ok: true,
		},
		{
			name: "already double quoted",
			raw:  `[{"doi": "10.1000/c", "count": 7}]`,
			want: []models.CitationSource{{DOI: "10.1000/c", Count: 7}},
			ok:   true,
		},
		{name: "empty string", raw: "", ok: false},
		{name: "empty list", raw: "[]", ok: false},
		{name: "whitespace only", raw: "   ", ok: false},
		{name: "truncated payload", raw: `[{'doi': '10.1`, ok: false},
		{name: "not a list", raw: `{'doi': 'x'}`, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCitationSources(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sources = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseVersions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["v1", "v2", "v3"]`, []string{"v1", "v2", "v3"}},
		{"single quoted array", `['v1', 'v2']`, []string{"v1", "v2"}},
		{"empty array", `[]`, []string{}},
		{"empty string", "", nil},
		{"malformed", `[v1, v2`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVersions(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("versions = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 1, 100},
		{0, 10, 0},
		{5, 0, 0},
		{5, -1, 0},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := percentOf(tt.part, tt.total); got != tt.want {
			t.Errorf("percentOf(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.25, 1.3},
		{1.24, 1.2},
		{0, 0},
		{-1.25, -1.3},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
