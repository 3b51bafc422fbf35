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

// FAQsHandler serves the FAQ API.
type FAQsHandler struct {
	faqs *store.FAQStore
}

// NewFAQsHandler creates a new FAQsHandler.
func NewFAQsHandler(faqs *store.FAQStore) *FAQsHandler {
	return &FAQsHandler{faqs: faqs}
}

// faqRequest is the request body for creating or updating a FAQ.
type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// faqWithHTML extends a FAQ with its rendered answer.
type faqWithHTML struct {
	model.FAQ
	AnswerHTML string `json:"answer_html"`
}

// List handles GET /api/faqs - all FAQs, most recently updated first.
func (h *FAQsHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.List(r.Context())
	if err != nil {
		WriteServerError(w, "listing faqs", err)
		return
	}
	WriteJSON(w, http.StatusOK, faqs)
}

// Get handles GET /api/faqs/{id}. With ?format=html the answer is also
// rendered to sanitized HTML.
func (h *FAQsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid FAQ ID")
		return
	}

	faq, err := h.faqs.Get(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "FAQ not found")
		return
	}
	if err != nil {
		WriteServerError(w, "getting faq", err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := render.Markdown(faq.Answer)
		if err != nil {
			WriteServerError(w, "rendering faq", err)
			return
		}
		WriteJSON(w, http.StatusOK, faqWithHTML{FAQ: faq, AnswerHTML: html})
		return
	}

	WriteJSON(w, http.StatusOK, faq)
}

// Create handles POST /api/faqs.
func (h *FAQsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Question == "" {
		WriteBadRequest(w, "Question is required")
		return
	}

	id, err := h.faqs.Create(r.Context(), req.Question, req.Answer)
	if err != nil {
		WriteServerError(w, "creating faq", err)
		return
	}
	WriteSuccess(w, map[string]any{"id": id})
}

// Update handles PUT /api/faqs/{id}.
func (h *FAQsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid FAQ ID")
		return
	}

	var req faqRequest
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Question == "" {
		WriteBadRequest(w, "Question is required")
		return
	}

	ok, err := h.faqs.Update(r.Context(), id, req.Question, req.Answer)
	if err != nil {
		WriteServerError(w, "updating faq", err)
		return
	}
	if !ok {
		WriteNotFound(w, "FAQ not found")
		return
	}
	WriteSuccess(w, nil)
}

// Delete handles POST /api/faqs/delete with body {id}.
func (h *FAQsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.ID < 1 {
		WriteBadRequest(w, "Invalid FAQ ID")
		return
	}

	changes, err := h.faqs.Delete(r.Context(), req.ID)
	if err != nil {
		WriteServerError(w, "deleting faq", err)
		return
	}
	WriteSuccess(w, map[string]any{"changes": changes})
}
