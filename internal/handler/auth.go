// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"guidekit/internal/auth"
	"guidekit/internal/middleware"
	"guidekit/internal/model"
	"guidekit/internal/store"
)

// AuthHandler serves the admin login, logout and session check endpoints.
type AuthHandler struct {
	sessions   *scs.SessionManager
	settings   *store.SettingsStore
	protection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *scs.SessionManager, settings *store.SettingsStore, protection *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{sessions: sessions, settings: settings, protection: protection}
}

// Login handles POST /api/admin/login with body {password}. A successful
// login rotates the session token before marking the session as admin.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Password == "" {
		WriteBadRequest(w, "Password is required")
		return
	}

	stored, err := h.settings.Get(r.Context(), model.SettingAdminPassword)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteServerError(w, "loading admin password", err)
		return
	}

	ip := middleware.ClientIP(r)
	ok, upgrade := auth.VerifyAdminPassword(req.Password, stored)
	if !ok {
		h.protection.RecordFailure(ip)
		slog.Warn("failed admin login", "ip", ip)
		WriteUnauthorized(w, "Invalid password")
		return
	}
	h.protection.RecordSuccess(ip)

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteServerError(w, "renewing session", err)
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyIsAdmin, true)

	// A plaintext password that just verified gets re-stored as a hash.
	if upgrade {
		hash, err := auth.HashPassword(req.Password)
		if err == nil {
			err = h.settings.Set(r.Context(), model.SettingAdminPassword, hash)
		}
		if err != nil {
			slog.Error("upgrading stored admin password", "error", err)
		}
	}

	WriteSuccess(w, nil)
}

// Check handles GET /api/admin/check - answers 401 until the session has
// authenticated as admin, success afterwards.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(h.sessions, r) {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, nil)
}

// Logout handles POST /api/admin/logout - destroys the session outright.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteServerError(w, "destroying session", err)
		return
	}
	WriteSuccess(w, nil)
}
