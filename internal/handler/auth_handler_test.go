// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"guidekit/internal/auth"
	"guidekit/internal/model"
	"guidekit/internal/store"
)

func TestLoginWithDefaultPassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": auth.DefaultAdminPassword}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
	}
	decode(t, rec, &body)
	if !body.Success {
		t.Error("login did not report success")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "nope"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginRequiresPassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/admin/login", map[string]string{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginUpgradesStoredPlaintext(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	settings := store.NewSettingsStore(ts.db)
	if err := settings.Set(ctx, model.SettingAdminPassword, "legacy-plain"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	rec := ts.request(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "legacy-plain"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	stored, err := settings.Get(ctx, model.SettingAdminPassword)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !auth.IsHash(stored) {
		t.Errorf("stored password not upgraded to hash: %q", stored)
	}

	// The upgraded hash still authenticates the same password.
	rec = ts.request(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "legacy-plain"}, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("login after upgrade status = %d", rec.Code)
	}
}

func TestCheckReflectsSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/admin/check", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous check status = %d, want 401", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
	}
	decode(t, rec, &body)
	if body.Success {
		t.Error("anonymous check reported success")
	}
	if got := rec.Header().Get("Cache-Control"); got == "" {
		t.Error("check response is cacheable")
	}

	cookies := ts.login(t)
	rec = ts.request(t, http.MethodGet, "/api/admin/check", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated check status = %d, body %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &body)
	if !body.Success {
		t.Error("authenticated check did not report success")
	}

	// Logout returns check to 401.
	if rec := ts.request(t, http.MethodPost, "/api/admin/logout", nil, cookies); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = ts.request(t, http.MethodGet, "/api/admin/check", nil, cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("check after logout status = %d, want 401", rec.Code)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.login(t)

	rec := ts.request(t, http.MethodPost, "/api/admin/logout", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	// The old cookie no longer authenticates.
	rec = ts.request(t, http.MethodPost, "/api/posts", map[string]string{"title": "x"}, cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("mutation after logout status = %d, want 401", rec.Code)
	}
}
