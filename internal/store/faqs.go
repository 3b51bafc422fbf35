// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"guidekit/internal/model"
)

// FAQStore persists the FAQ list.
type FAQStore struct {
	db *DB
}

// NewFAQStore creates a FAQStore bound to the given database handle.
func NewFAQStore(db *DB) *FAQStore {
	return &FAQStore{db: db}
}

// List returns all FAQs, most recently updated first.
func (s *FAQStore) List(ctx context.Context) ([]model.FAQ, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, question, answer, updated_at FROM faqs ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing faqs: %w", err)
	}
	defer rows.Close()

	faqs := []model.FAQ{}
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing faqs: %w", err)
	}
	return faqs, nil
}

// Get returns one FAQ by id. A missing row surfaces as sql.ErrNoRows.
func (s *FAQStore) Get(ctx context.Context, id int64) (model.FAQ, error) {
	var f model.FAQ
	err := s.db.QueryRow(ctx,
		`SELECT id, question, answer, updated_at FROM faqs WHERE id = ?`, id).
		Scan(&f.ID, &f.Question, &f.Answer, &f.UpdatedAt)
	if err != nil {
		return model.FAQ{}, err
	}
	return f, nil
}

// Create inserts a FAQ, stamping updated_at in the same statement.
func (s *FAQStore) Create(ctx context.Context, question, answer string) (int64, error) {
	id, err := s.db.Insert(ctx,
		`INSERT INTO faqs (question, answer, updated_at) VALUES (?, ?, ?)`,
		question, answer, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("creating faq: %w", err)
	}
	return id, nil
}

// Update overwrites a FAQ and refreshes updated_at. Returns false when no
// row matched.
func (s *FAQStore) Update(ctx context.Context, id int64, question, answer string) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE faqs SET question = ?, answer = ?, updated_at = ? WHERE id = ?`,
		question, answer, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("updating faq: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a FAQ and returns the affected row count.
func (s *FAQStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting faq: %w", err)
	}
	return res.RowsAffected, nil
}
