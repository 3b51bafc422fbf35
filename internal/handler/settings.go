// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"guidekit/internal/auth"
	"guidekit/internal/model"
	"guidekit/internal/store"
)

// SettingsHandler serves the site-wide settings API.
type SettingsHandler struct {
	settings *store.SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings. The serialized contact-link list is
// parsed back to structured form here; the admin password never leaves
// the store through this endpoint.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored, err := h.settings.GetAll(r.Context())
	if err != nil {
		WriteServerError(w, "loading settings", err)
		return
	}

	out := make(map[string]any, len(stored))
	for key, value := range stored {
		switch key {
		case model.SettingAdminPassword:
			// Credential material stays server-side.
		case model.SettingContactLinks:
			links, err := model.DecodeContactLinks(value)
			if err != nil {
				slog.Warn("stored contact links are malformed", "error", err)
				out[key] = []model.ContactLink{}
				continue
			}
			out[key] = links
		default:
			out[key] = value
		}
	}
	WriteJSON(w, http.StatusOK, out)
}

// Update handles POST /api/settings with a partial mapping: provided keys
// with non-empty values are upserted, omitted keys are left untouched. A
// submitted adminPassword is hashed before it is stored.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	if err := DecodeBody(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	updates := make(map[string]string, len(req))
	for key, raw := range req {
		value, err := settingValue(key, raw)
		if err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
		updates[key] = value
	}

	if err := h.settings.SetMany(r.Context(), updates); err != nil {
		WriteServerError(w, "saving settings", err)
		return
	}
	WriteSuccess(w, nil)
}

// settingValue converts one submitted setting into its stored text form.
func settingValue(key string, raw json.RawMessage) (string, error) {
	switch key {
	case model.SettingContactLinks:
		var links []model.ContactLink
		if err := json.Unmarshal(raw, &links); err != nil {
			return "", errInvalidContactLinks
		}
		return model.EncodeContactLinks(links)
	case model.SettingAdminPassword:
		var password string
		if err := json.Unmarshal(raw, &password); err != nil {
			return "", errInvalidSettingValue
		}
		if password == "" {
			return "", nil
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return "", err
		}
		return hash, nil
	default:
		// Plain strings are stored as-is; any other JSON value is stored
		// in its serialized form.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
		return string(raw), nil
	}
}

var (
	errInvalidContactLinks = errors.New("contactLinks must be a list of {label, url, icon}")
	errInvalidSettingValue = errors.New("adminPassword must be a string")
)
