// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"guidekit/internal/model"
)

func TestCategoryStoreCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	id, err := categories.Create(ctx, "Care", 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, err := categories.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if c.Name != "Care" || c.DisplayOrder != 2 {
		t.Errorf("Get returned %+v", c)
	}

	ok, err := categories.Update(ctx, id, "Health", 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("Update reported no match")
	}

	changes, err := categories.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if changes != 1 {
		t.Errorf("Delete changes = %d, want 1", changes)
	}
}

func TestCategoryStoreUniqueName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	if _, err := categories.Create(ctx, "Care", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := categories.Create(ctx, "Care", 2); err == nil {
		t.Error("duplicate name did not fail")
	}
}

func TestCategoryStoreListOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	for _, c := range []struct {
		name  string
		order int64
	}{
		{"Third", 30},
		{"First", 10},
		{"Second", 20},
	} {
		if _, err := categories.Create(ctx, c.name, c.order); err != nil {
			t.Fatalf("Create %s: %v", c.name, err)
		}
	}

	list, err := categories.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	if len(list) != len(want) {
		t.Fatalf("List returned %d categories, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestCategoryStoreReplaceAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	if _, err := categories.Create(ctx, "Old", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	replacement := []model.Category{
		{Name: "New A", DisplayOrder: 1},
		{Name: "New B", DisplayOrder: 2},
	}
	if err := categories.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	list, err := categories.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "New A" || list[1].Name != "New B" {
		t.Errorf("ReplaceAll result = %+v", list)
	}
}

func TestCategoryStoreReplaceAllFailureKeepsOld(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	if _, err := categories.Create(ctx, "Old", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A duplicate name inside the replacement violates the unique
	// constraint; the whole swap must roll back.
	bad := []model.Category{
		{Name: "Dup", DisplayOrder: 1},
		{Name: "Dup", DisplayOrder: 2},
	}
	if err := categories.ReplaceAll(ctx, bad); err == nil {
		t.Fatal("ReplaceAll with duplicates did not fail")
	}

	list, err := categories.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Old" {
		t.Errorf("failed ReplaceAll did not preserve old data: %+v", list)
	}
}

func TestCategoryStoreReplaceAllEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryStore(db)

	if _, err := categories.Create(ctx, "Old", 1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := categories.ReplaceAll(ctx, []model.Category{}); err != nil {
		t.Fatalf("ReplaceAll empty: %v", err)
	}

	list, err := categories.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ReplaceAll empty left %d categories", len(list))
	}
}
