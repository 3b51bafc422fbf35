// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// schema is the logical table layout, written once in the SQLite dialect.
// The active dialect translates the auto-increment and timestamp column
// declarations when the statements run against PostgreSQL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		category TEXT,
		icon TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		display_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS faqs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		answer TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS training_process (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		step_order INTEGER NOT NULL DEFAULT 0
	)`,
}

// CreateSchema creates all application tables plus the backend-native
// session table. Safe to run on every start.
func (db *DB) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if err := db.ExecDDL(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	// The session table shape is dictated by the scs store bound to this
	// backend, so it is defined per-dialect rather than translated.
	for _, stmt := range db.d.sessionsDDL() {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating sessions table: %w", db.wrap(err))
		}
	}

	return nil
}
