// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/goccy/go-json"
)

// GenerateKey derives a cache key from an endpoint method name and its
// parameters. The key must be a pure, deterministic function of the inputs:
// params are canonicalized through JSON serialization (struct fields in
// declaration order, map keys sorted) before hashing, so two logically
// identical requests collide to the same key regardless of how the caller
// assembled them.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to a formatted key; %+v is stable for structs.
		return fmt.Sprintf("%s:%+v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
