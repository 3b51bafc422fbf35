// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"guidekit/internal/model"
	"guidekit/internal/store"
)

// CategoriesHandler serves the post category API.
type CategoriesHandler struct {
	categories *store.CategoryStore
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(categories *store.CategoryStore) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List handles GET /api/categories - all categories in display order.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		WriteServerError(w, "listing categories", err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		DisplayOrder int64  `json:"display_order"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Name == "" {
		WriteBadRequest(w, "Name is required")
		return
	}

	id, err := h.categories.Create(r.Context(), req.Name, req.DisplayOrder)
	if err != nil {
		WriteServerError(w, "creating category", err)
		return
	}
	WriteSuccess(w, map[string]any{"id": id})
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid category ID")
		return
	}

	changes, err := h.categories.Delete(r.Context(), id)
	if err != nil {
		WriteServerError(w, "deleting category", err)
		return
	}
	WriteSuccess(w, map[string]any{"changes": changes})
}

// BulkReplace handles POST /api/categories/bulk - swaps the entire
// collection atomically for the submitted one, preserving its order.
func (h *CategoriesHandler) BulkReplace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []model.Category `json:"categories"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Categories == nil {
		WriteBadRequest(w, "Categories array is required")
		return
	}
	for _, c := range req.Categories {
		if c.Name == "" {
			WriteBadRequest(w, "Every category needs a name")
			return
		}
	}

	if err := h.categories.ReplaceAll(r.Context(), req.Categories); err != nil {
		WriteServerError(w, "replacing categories", err)
		return
	}
	WriteSuccess(w, nil)
}
