// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the core data types persisted by the store.
package model

import "time"

// Post is a published guide. Content is markdown source; rendering to HTML
// happens on demand in the handler layer, never at rest.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Icon      string    `json:"icon"`
	UpdatedAt time.Time `json:"updated_at"`
}
