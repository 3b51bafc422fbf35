// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// SettingsStore persists site-wide key/value settings. Structured values
// are serialized to text by the caller; the store only sees strings.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a SettingsStore bound to the given database handle.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetAll reduces the settings rows into a single mapping. Primary-key
// uniqueness guarantees no key appears twice.
func (s *SettingsStore) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// Get returns a single setting value. A missing key surfaces as
// sql.ErrNoRows; callers supply their own defaults.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts a single setting.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.Exec(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}

// SetMany upserts every provided key with a non-empty value. Keys omitted
// from the input are left untouched; this is a partial update, not a full
// replace.
func (s *SettingsStore) SetMany(ctx context.Context, settings map[string]string) error {
	err := s.db.InTx(ctx, func(tx *Tx) error {
		for key, value := range settings {
			if value == "" {
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
