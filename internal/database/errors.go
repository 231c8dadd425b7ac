// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import "errors"

// ErrPaperNotFound signals that a detail lookup matched zero rows. This is an
// expected outcome, surfaced distinctly from storage failures so the HTTP
// boundary can map it to 404 without logging it as an error.
var ErrPaperNotFound = errors.New("paper not found")
