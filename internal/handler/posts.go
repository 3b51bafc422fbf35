// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"guidekit/internal/model"
	"guidekit/internal/render"
	"guidekit/internal/store"
)

// PostsHandler serves the guides API.
type PostsHandler struct {
	posts *store.PostStore
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(posts *store.PostStore) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// postRequest is the request body for creating or updating a post.
type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// postWithHTML extends a post with its rendered content.
type postWithHTML struct {
	model.Post
	ContentHTML string `json:"content_html"`
}

// List handles GET /api/posts - all posts, most recently updated first.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		WriteServerError(w, "listing posts", err)
		return
	}
	WriteJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}. With ?format=html the response carries
// the markdown rendered to sanitized HTML alongside the source.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Post not found")
		return
	}
	if err != nil {
		WriteServerError(w, "getting post", err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := render.Markdown(post.Content)
		if err != nil {
			WriteServerError(w, "rendering post", err)
			return
		}
		WriteJSON(w, http.StatusOK, postWithHTML{Post: post, ContentHTML: html})
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required")
		return
	}

	id, err := h.posts.Create(r.Context(), store.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Icon:     req.Icon,
	})
	if err != nil {
		WriteServerError(w, "creating post", err)
		return
	}
	WriteSuccess(w, map[string]any{"id": id})
}

// Update handles PUT /api/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid post ID")
		return
	}

	var req postRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required")
		return
	}

	ok, err := h.posts.Update(r.Context(), id, store.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Icon:     req.Icon,
	})
	if err != nil {
		WriteServerError(w, "updating post", err)
		return
	}
	if !ok {
		WriteNotFound(w, "Post not found")
		return
	}
	WriteSuccess(w, nil)
}

// Delete handles POST /api/posts/delete with body {id}. A nonexistent id
// reports zero changes, not an error.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.ID < 1 {
		WriteBadRequest(w, "Invalid post ID")
		return
	}

	changes, err := h.posts.Delete(r.Context(), req.ID)
	if err != nil {
		WriteServerError(w, "deleting post", err)
		return
	}
	WriteSuccess(w, map[string]any{"changes": changes})
}
