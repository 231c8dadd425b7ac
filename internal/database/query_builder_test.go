// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"reflect"
	"testing"
)

func TestQueryBuilderNoClauses(t *testing.T) {
	query, args := newQueryBuilder("SELECT COUNT(*) FROM papers WHERE 1=1").build("")
	if query != "SELECT COUNT(*) FROM papers WHERE 1=1" {
		t.Errorf("unexpected query: %q", query)
	}
	if len(args) != 0 {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestQueryBuilderJoinsClausesWithAnd(t *testing.T) {
	query, args := newQueryBuilder("SELECT * FROM papers WHERE 1=1").
		add("preprint_subject LIKE ?", "%bio%").
		add("total_citation >= ?", 5).
		build("ORDER BY total_citation DESC LIMIT ? OFFSET ?", 20, 40)

	want := "SELECT * FROM papers WHERE 1=1 AND preprint_subject LIKE ? AND total_citation >= ? ORDER BY total_citation DESC LIMIT ? OFFSET ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	wantArgs := []interface{}{"%bio%", 5, 20, 40}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestQueryBuilderFilterArgsPrecedeTailArgs(t *testing.T) {
	_, args := newQueryBuilder("SELECT * FROM papers WHERE 1=1").
		addFilter(PaperFilter{Subject: "cs"}).
		build("LIMIT ? OFFSET ?", 10, 0)
	want := []interface{}{"%cs%", 10, 0}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Size: 20}, 0},
		{Page{Number: 2, Size: 20}, 20},
		{Page{Number: 3, Size: 10}, 20},
		{Page{Number: 10, Size: 100}, 900},
	}
	for _, tt := range tests {
		if got := tt.page.Offset(); got != tt.want {
			t.Errorf("Page%+v.Offset() = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestPageHasNext(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int
		want  bool
	}{
		{"first of three pages", Page{Number: 1, Size: 10}, 25, true},
		{"middle page", Page{Number: 2, Size: 10}, 25, true},
		{"last partial page", Page{Number: 3, Size: 10}, 25, false},
		{"exact final page", Page{Number: 2, Size: 10}, 20, false},
		{"empty result", Page{Number: 1, Size: 10}, 0, false},
		{"single full page", Page{Number: 1, Size: 10}, 10, false},
		{"one past a full page", Page{Number: 1, Size: 10}, 11, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.HasNext(tt.total); got != tt.want {
				t.Errorf("Page%+v.HasNext(%d) = %v, want %v", tt.page, tt.total, got, tt.want)
			}
		})
	}
}
