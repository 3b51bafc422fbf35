// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category groups posts for presentation. DisplayOrder defines the sequence
// shown to visitors; values are not required to be contiguous.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int64  `json:"display_order"`
}
