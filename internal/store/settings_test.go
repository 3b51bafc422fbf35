// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestSettingsStoreSetAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsStore(db)

	if err := settings.Set(ctx, "siteName", "Guidekit"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := settings.Get(ctx, "siteName")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "Guidekit" {
		t.Errorf("Get = %q, want %q", got, "Guidekit")
	}
}

func TestSettingsStoreSetOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsStore(db)

	// Second Set for the same key exercises the upsert path.
	if err := settings.Set(ctx, "siteName", "Old"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := settings.Set(ctx, "siteName", "New"); err != nil {
		t.Fatalf("Set again: %v", err)
	}

	got, err := settings.Get(ctx, "siteName")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "New" {
		t.Errorf("Get = %q, want %q", got, "New")
	}

	all, err := settings.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("GetAll returned %d rows, want 1", len(all))
	}
}

func TestSettingsStoreGetMissing(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	_, err := settings.Get(context.Background(), "absent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get missing = %v, want sql.ErrNoRows", err)
	}
}

func TestSettingsStoreSetManyPartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsStore(db)

	if err := settings.Set(ctx, "siteName", "Guidekit"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := settings.Set(ctx, "siteTagline", "Original tagline"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Only siteName is updated; the empty tagline is skipped, not blanked.
	err := settings.SetMany(ctx, map[string]string{
		"siteName":    "Renamed",
		"siteTagline": "",
	})
	if err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	all, err := settings.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if all["siteName"] != "Renamed" {
		t.Errorf("siteName = %q, want %q", all["siteName"], "Renamed")
	}
	if all["siteTagline"] != "Original tagline" {
		t.Errorf("siteTagline = %q, want untouched original", all["siteTagline"])
	}
}

func TestSettingsStoreGetAllEmpty(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsStore(db)

	all, err := settings.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("GetAll on empty table returned %d rows", len(all))
	}
}
