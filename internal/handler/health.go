// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"guidekit/internal/store"
	"guidekit/internal/version"
)

// HealthHandler reports process liveness and database reachability.
type HealthHandler struct {
	db   *store.DB
	info version.Info
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *store.DB, info version.Info) *HealthHandler {
	return &HealthHandler{db: db, info: info}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, map[string]any{
		"status":  status,
		"backend": h.db.Backend(),
		"version": h.info.Version,
	})
}
