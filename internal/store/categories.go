// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"guidekit/internal/model"
)

// CategoryStore persists post categories.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore creates a CategoryStore bound to the given database handle.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories in display order.
func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, display_order FROM categories ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// Get returns one category by id. A missing row surfaces as sql.ErrNoRows.
func (s *CategoryStore) Get(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := s.db.QueryRow(ctx,
		`SELECT id, name, display_order FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.DisplayOrder)
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// Create inserts a category and returns the new id. Name uniqueness is
// enforced by the store.
func (s *CategoryStore) Create(ctx context.Context, name string, displayOrder int64) (int64, error) {
	id, err := s.db.Insert(ctx,
		`INSERT INTO categories (name, display_order) VALUES (?, ?)`, name, displayOrder)
	if err != nil {
		return 0, fmt.Errorf("creating category: %w", err)
	}
	return id, nil
}

// Update overwrites a category. Returns false when no row matched.
func (s *CategoryStore) Update(ctx context.Context, id int64, name string, displayOrder int64) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE categories SET name = ?, display_order = ? WHERE id = ?`, name, displayOrder, id)
	if err != nil {
		return false, fmt.Errorf("updating category: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a category and returns the affected row count.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting category: %w", err)
	}
	return res.RowsAffected, nil
}

// ReplaceAll swaps the entire collection for the given one, preserving its
// order, as a single all-or-nothing unit. A concurrent reader observes
// either the full old list or the full new list.
func (s *CategoryStore) ReplaceAll(ctx context.Context, categories []model.Category) error {
	err := s.db.InTx(ctx, func(tx *Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM categories`); err != nil {
			return err
		}
		for _, c := range categories {
			if _, err := tx.Insert(ctx,
				`INSERT INTO categories (name, display_order) VALUES (?, ?)`,
				c.Name, c.DisplayOrder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing categories: %w", err)
	}
	return nil
}
