// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"reflect"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestFilterConditionsEmpty(t *testing.T) {
	clauses, args := PaperFilter{}.conditions()
	if len(clauses) != 0 {
		t.Errorf("empty filter produced clauses: %v", clauses)
	}
	if len(args) != 0 {
		t.Errorf("empty filter produced args: %v", args)
	}
}

func TestFilterConditionsSingleSubject(t *testing.T) {
	clauses, args := PaperFilter{Subject: "Biology"}.conditions()
	if len(clauses) != 1 || clauses[0] != "preprint_subject LIKE ?" {
		t.Fatalf("unexpected clauses: %v", clauses)
	}
	if len(args) != 1 || args[0] != "%Biology%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestFilterConditionsSubjectsIn(t *testing.T) {
	f := PaperFilter{
		Subject:  "ignored when list set",
		Subjects: []string{"Biology", "Neuroscience"},
	}
	clauses, args := f.conditions()
	if len(clauses) != 1 || clauses[0] != "preprint_subject IN (?,?)" {
		t.Fatalf("unexpected clauses: %v", clauses)
	}
	want := []interface{}{"Biology", "Neuroscience"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
}

func TestFilterConditionsMalformedMonthIgnored(t *testing.T) {
	for _, month := range []string{"2024/13", "2024-13", "2024-00", "202401", "2024-1", "abcd-ef"} {
		clauses, args := PaperFilter{Month: month}.conditions()
		if len(clauses) != 0 || len(args) != 0 {
			t.Errorf("month %q should be ignored, got clauses %v args %v", month, clauses, args)
		}
	}
}

func TestFilterConditionsValidMonth(t *testing.T) {
	clauses, args := PaperFilter{Month: "2024-03"}.conditions()
	if len(clauses) != 1 || clauses[0] != "strftime(preprint_submission_date, '%Y-%m') = ?" {
		t.Fatalf("unexpected clauses: %v", clauses)
	}
	if len(args) != 1 || args[0] != "2024-03" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestFilterConditionsArgOrderMatchesClauses(t *testing.T) {
	f := PaperFilter{
		Subject:     "bio",
		Server:      "bioRxiv",
		Country:     "Germany",
		YearFrom:    intPtr(2020),
		YearTo:      intPtr(2023),
		Month:       "2021-06",
		CitationMin: intPtr(5),
		CitationMax: intPtr(100),
	}
	clauses, args := f.conditions()
	if len(clauses) != 8 {
		t.Fatalf("expected 8 clauses, got %d: %v", len(clauses), clauses)
	}
	want := []interface{}{"%bio%", "%bioRxiv%", "Germany", 2020, 2023, "2021-06", 5, 100}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
}

func TestValidMonth(t *testing.T) {
	tests := []struct {
		month string
		want  bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"1999-06", true},
		{"2024-00", false},
		{"2024-13", false},
		{"2024/01", false},
		{"2024-1", false},
		{"24-01", false},
		{"", false},
		{"yyyy-mm", false},
	}
	for _, tt := range tests {
		if got := validMonth(tt.month); got != tt.want {
			t.Errorf("validMonth(%q) = %v, want %v", tt.month, got, tt.want)
		}
	}
}

func TestFilterEchoNamesAppliedFiltersOnly(t *testing.T) {
	f := PaperFilter{
		Subject:     "bio",
		Month:       "2024-13", // malformed, never applied
		CitationMin: intPtr(10),
	}
	echo := f.echo()
	want := map[string]string{
		"subject":      "bio",
		"citation_min": "10",
	}
	if !reflect.DeepEqual(echo, want) {
		t.Fatalf("echo = %v, want %v", echo, want)
	}
}

func TestFilterEchoSubjectsList(t *testing.T) {
	echo := PaperFilter{Subjects: []string{"a", "b"}, Subject: "shadowed"}.echo()
	if echo["subjects"] != "a,b" {
		t.Errorf("subjects echo = %q, want %q", echo["subjects"], "a,b")
	}
	if _, ok := echo["subject"]; ok {
		t.Error("subject should not be echoed when subjects list is set")
	}
}
