// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"guidekit/internal/model"
	"guidekit/internal/render"
	"guidekit/internal/store"
)

// TrainingHandler serves the training process checklist API.
type TrainingHandler struct {
	training *store.TrainingStore
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(training *store.TrainingStore) *TrainingHandler {
	return &TrainingHandler{training: training}
}

// List handles GET /api/training-process - all steps in checklist order.
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	steps, err := h.training.List(r.Context())
	if err != nil {
		WriteServerError(w, "listing training steps", err)
		return
	}
	WriteJSON(w, http.StatusOK, steps)
}

// Replace handles POST /api/training-process with body {steps: [...]}.
// The whole checklist is swapped atomically; step descriptions may carry
// HTML and are sanitized before storage.
func (h *TrainingHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Steps []model.TrainingStep `json:"steps"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Steps == nil {
		WriteBadRequest(w, "Steps array is required")
		return
	}

	for i := range req.Steps {
		if req.Steps[i].Title == "" {
			WriteBadRequest(w, "Every step needs a title")
			return
		}
		req.Steps[i].Description = render.SanitizeHTML(req.Steps[i].Description)
		if req.Steps[i].StepOrder == 0 {
			req.Steps[i].StepOrder = int64(i + 1)
		}
	}

	if err := h.training.ReplaceAll(r.Context(), req.Steps); err != nil {
		WriteServerError(w, "replacing training steps", err)
		return
	}
	WriteSuccess(w, nil)
}
