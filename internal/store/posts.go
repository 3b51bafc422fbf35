// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guidekit/internal/model"
)

// PostStore persists guides. Reads always hit the backend; nothing is
// cached in process.
type PostStore struct {
	db *DB
}

// NewPostStore creates a PostStore bound to the given database handle.
func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

// CreatePostParams holds the caller-supplied fields of a new post.
type CreatePostParams struct {
	Title    string
	Content  string
	Category string
	Icon     string
}

// List returns all posts, most recently updated first. An empty table
// yields an empty slice, not an error.
func (s *PostStore) List(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, content, category, icon, updated_at FROM posts ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// Get returns one post by id. A missing row surfaces as sql.ErrNoRows.
func (s *PostStore) Get(ctx context.Context, id int64) (model.Post, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, title, content, category, icon, updated_at FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// Create inserts a new post, stamping updated_at in the same statement,
// and returns the new id.
func (s *PostStore) Create(ctx context.Context, p CreatePostParams) (int64, error) {
	id, err := s.db.Insert(ctx,
		`INSERT INTO posts (title, content, category, icon, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Content, nullString(p.Category), p.Icon, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}
	return id, nil
}

// Update overwrites a post's fields and refreshes updated_at. Returns
// false when no row matched the id.
func (s *PostStore) Update(ctx context.Context, id int64, p CreatePostParams) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE posts SET title = ?, content = ?, category = ?, icon = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Content, nullString(p.Category), p.Icon, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("updating post: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a post and returns the affected row count. Deleting a
// nonexistent id is not an error; the count is zero.
func (s *PostStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting post: %w", err)
	}
	return res.RowsAffected, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (model.Post, error) {
	var p model.Post
	var category sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &category, &p.Icon, &p.UpdatedAt); err != nil {
		return model.Post{}, err
	}
	p.Category = category.String
	return p, nil
}

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
