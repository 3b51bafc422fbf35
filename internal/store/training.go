// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"guidekit/internal/model"
)

// TrainingStore persists the ordered training process checklist.
type TrainingStore struct {
	db *DB
}

// NewTrainingStore creates a TrainingStore bound to the given database handle.
func NewTrainingStore(db *DB) *TrainingStore {
	return &TrainingStore{db: db}
}

// List returns all steps in checklist order.
func (s *TrainingStore) List(ctx context.Context) ([]model.TrainingStep, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, description, step_order FROM training_process ORDER BY step_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing training steps: %w", err)
	}
	defer rows.Close()

	steps := []model.TrainingStep{}
	for rows.Next() {
		var st model.TrainingStep
		if err := rows.Scan(&st.ID, &st.Title, &st.Description, &st.StepOrder); err != nil {
			return nil, fmt.Errorf("scanning training step: %w", err)
		}
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing training steps: %w", err)
	}
	return steps, nil
}

// Get returns one step by id. A missing row surfaces as sql.ErrNoRows.
func (s *TrainingStore) Get(ctx context.Context, id int64) (model.TrainingStep, error) {
	var st model.TrainingStep
	err := s.db.QueryRow(ctx,
		`SELECT id, title, description, step_order FROM training_process WHERE id = ?`, id).
		Scan(&st.ID, &st.Title, &st.Description, &st.StepOrder)
	if err != nil {
		return model.TrainingStep{}, err
	}
	return st, nil
}

// Create inserts a single step and returns the new id.
func (s *TrainingStore) Create(ctx context.Context, title, description string, stepOrder int64) (int64, error) {
	id, err := s.db.Insert(ctx,
		`INSERT INTO training_process (title, description, step_order) VALUES (?, ?, ?)`,
		title, description, stepOrder)
	if err != nil {
		return 0, fmt.Errorf("creating training step: %w", err)
	}
	return id, nil
}

// Update overwrites a step. Returns false when no row matched.
func (s *TrainingStore) Update(ctx context.Context, id int64, title, description string, stepOrder int64) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE training_process SET title = ?, description = ?, step_order = ? WHERE id = ?`,
		title, description, stepOrder, id)
	if err != nil {
		return false, fmt.Errorf("updating training step: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a step and returns the affected row count.
func (s *TrainingStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM training_process WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting training step: %w", err)
	}
	return res.RowsAffected, nil
}

// ReplaceAll swaps the whole checklist for the given one in a single
// all-or-nothing transaction.
func (s *TrainingStore) ReplaceAll(ctx context.Context, steps []model.TrainingStep) error {
	err := s.db.InTx(ctx, func(tx *Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM training_process`); err != nil {
			return err
		}
		for _, st := range steps {
			if _, err := tx.Insert(ctx,
				`INSERT INTO training_process (title, description, step_order) VALUES (?, ?, ?)`,
				st.Title, st.Description, st.StepOrder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing training steps: %w", err)
	}
	return nil
}
