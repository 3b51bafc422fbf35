// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"guidekit/internal/model"
)

func TestTrainingStoreReplaceAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	training := NewTrainingStore(db)

	if _, err := training.Create(ctx, "Old step", "gone after replace", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	steps := []model.TrainingStep{
		{Title: "Settle in", Description: "Calm first week.", StepOrder: 1},
		{Title: "Basics", Description: "Core commands.", StepOrder: 2},
		{Title: "Practice", Description: "New places.", StepOrder: 3},
	}
	if err := training.ReplaceAll(ctx, steps); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	list, err := training.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d steps, want 3", len(list))
	}
	for i, want := range []string{"Settle in", "Basics", "Practice"} {
		if list[i].Title != want {
			t.Errorf("List[%d].Title = %q, want %q", i, list[i].Title, want)
		}
		if list[i].StepOrder != int64(i+1) {
			t.Errorf("List[%d].StepOrder = %d, want %d", i, list[i].StepOrder, i+1)
		}
	}
}

func TestTrainingStoreListOrdersBySteps(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	training := NewTrainingStore(db)

	// Inserted out of checklist order on purpose.
	if _, err := training.Create(ctx, "Second", "", 20); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := training.Create(ctx, "First", "", 10); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := training.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Title != "First" || list[1].Title != "Second" {
		t.Errorf("List order wrong: %+v", list)
	}
}

func TestTrainingStoreUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	training := NewTrainingStore(db)

	id, err := training.Create(ctx, "Step", "desc", 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := training.Update(ctx, id, "Renamed", "new desc", 5)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("Update reported no match")
	}

	st, err := training.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.Title != "Renamed" || st.StepOrder != 5 {
		t.Errorf("Update not persisted: %+v", st)
	}

	changes, err := training.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if changes != 1 {
		t.Errorf("Delete changes = %d, want 1", changes)
	}
}
