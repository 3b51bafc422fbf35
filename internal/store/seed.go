// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"guidekit/internal/model"
)

// Seed populates first-run content. Each collection is seeded only when its
// table is empty, so repeated starts are no-ops. The admin password is
// deliberately not seeded: the auth gate falls back to its fixed default
// until one is set.
func Seed(ctx context.Context, db *DB) error {
	if err := seedSettings(ctx, db); err != nil {
		return err
	}
	if err := seedCategories(ctx, db); err != nil {
		return err
	}
	if err := seedPosts(ctx, db); err != nil {
		return err
	}
	if err := seedFAQs(ctx, db); err != nil {
		return err
	}
	if err := seedTrainingSteps(ctx, db); err != nil {
		return err
	}
	return nil
}

func tableEmpty(ctx context.Context, db *DB, table string) (bool, error) {
	var count int64
	// Table names come from the fixed schema, never from input.
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return false, fmt.Errorf("counting %s: %w", table, err)
	}
	return count == 0, nil
}

func seedSettings(ctx context.Context, db *DB) error {
	empty, err := tableEmpty(ctx, db, "settings")
	if err != nil || !empty {
		return err
	}

	links, err := model.EncodeContactLinks([]model.ContactLink{
		{Label: "Email", URL: "mailto:hello@example.com", Icon: "mail"},
		{Label: "Instagram", URL: "https://instagram.com/example", Icon: "instagram"},
	})
	if err != nil {
		return err
	}

	settings := NewSettingsStore(db)
	defaults := map[string]string{
		model.SettingSiteName:     "Guidekit",
		model.SettingSiteTagline:  "Guides, answers and a training plan",
		model.SettingContactLinks: links,
	}
	if err := settings.SetMany(ctx, defaults); err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}
	slog.Info("seeded default settings", "keys", len(defaults))
	return nil
}

func seedCategories(ctx context.Context, db *DB) error {
	empty, err := tableEmpty(ctx, db, "categories")
	if err != nil || !empty {
		return err
	}

	categories := NewCategoryStore(db)
	for i, name := range []string{"Getting Started", "Care", "Behavior"} {
		if _, err := categories.Create(ctx, name, int64(i+1)); err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}
	}
	slog.Info("seeded default categories")
	return nil
}

func seedPosts(ctx context.Context, db *DB) error {
	empty, err := tableEmpty(ctx, db, "posts")
	if err != nil || !empty {
		return err
	}

	posts := NewPostStore(db)
	seeds := []CreatePostParams{
		{
			Title:    "Welcome",
			Content:  "## Welcome\n\nThis is your first guide. Edit or delete it from the admin panel.",
			Category: "Getting Started",
			Icon:     "book",
		},
		{
			Title:    "House Rules",
			Content:  "Consistency matters more than intensity. Start with short daily sessions.",
			Category: "Behavior",
			Icon:     "home",
		},
	}
	for _, p := range seeds {
		if _, err := posts.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding posts: %w", err)
		}
	}
	slog.Info("seeded default posts", "count", len(seeds))
	return nil
}

func seedFAQs(ctx context.Context, db *DB) error {
	empty, err := tableEmpty(ctx, db, "faqs")
	if err != nil || !empty {
		return err
	}

	faqs := NewFAQStore(db)
	if _, err := faqs.Create(ctx,
		"How do I get started?",
		"Read the *Getting Started* guides first, then follow the training process step by step."); err != nil {
		return fmt.Errorf("seeding faqs: %w", err)
	}
	slog.Info("seeded default faqs")
	return nil
}

func seedTrainingSteps(ctx context.Context, db *DB) error {
	empty, err := tableEmpty(ctx, db, "training_process")
	if err != nil || !empty {
		return err
	}

	training := NewTrainingStore(db)
	steps := []model.TrainingStep{
		{Title: "Settle in", Description: "Give everyone a calm first week at home.", StepOrder: 1},
		{Title: "Basics", Description: "Short daily sessions on the core commands.", StepOrder: 2},
		{Title: "Practice", Description: "Repeat in new places with new distractions.", StepOrder: 3},
	}
	if err := training.ReplaceAll(ctx, steps); err != nil {
		return fmt.Errorf("seeding training steps: %w", err)
	}
	slog.Info("seeded default training steps", "count", len(steps))
	return nil
}
