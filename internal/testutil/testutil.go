// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"guidekit/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates a temporary SQLite-backed database with the schema
// applied. Returns the database and a cleanup function that should be
// deferred.
func TestDB(t *testing.T) (*store.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "guidekit-test.db")

	db, err := store.Open(store.Config{Path: dbPath})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := db.CreateSchema(context.Background()); err != nil {
		_ = db.Close()
		t.Fatalf("CreateSchema: %v", err)
	}

	return db, func() {
		_ = db.Close()
	}
}

// SeededTestDB creates a test database with the starter content applied,
// for tests that rely on the default rows.
func SeededTestDB(t *testing.T) (*store.DB, func()) {
	t.Helper()

	db, cleanup := TestDB(t)
	if err := store.Seed(context.Background(), db); err != nil {
		cleanup()
		t.Fatalf("Seed: %v", err)
	}
	return db, cleanup
}
