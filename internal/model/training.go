// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// TrainingStep is one entry of the ordered training process checklist.
// The whole collection is replaced atomically on edit, never patched per-row.
type TrainingStep struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StepOrder   int64  `json:"step_order"`
}
