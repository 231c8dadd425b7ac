// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package validation

import (
	"strings"
	"testing"
)

type pageParams struct {
	Page     int `validate:"min=1"`
	PageSize int `validate:"min=1,max=100"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&pageParams{Page: 1, PageSize: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	verr := ValidateStruct(&pageParams{Page: 0, PageSize: 20})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 1 {
		t.Fatalf("errors = %v, want 1", verr.Errors())
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %s", apiErr.Code)
	}
	if apiErr.Message != "Page must be at least 1" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "Page" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	verr := ValidateStruct(&pageParams{Page: -1, PageSize: 500})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("errors = %v, want 2", verr.Errors())
	}

	apiErr := verr.ToAPIError()
	if !strings.Contains(apiErr.Message, "Page") || !strings.Contains(apiErr.Message, "PageSize") {
		t.Errorf("message = %q, should name both fields", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("details = %v, want fields list", apiErr.Details)
	}
}

func TestValidateStructOneOf(t *testing.T) {
	type sorted struct {
		SortBy string `validate:"oneof=citations date title"`
	}
	verr := ValidateStruct(&sorted{SortBy: "bogus"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if got := verr.Errors()[0].Message; got != "SortBy must be one of: citations date title" {
		t.Errorf("message = %q", got)
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator should return the same instance")
	}
}
