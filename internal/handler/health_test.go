// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Backend string `json:"backend"`
		Version string `json:"version"`
	}
	decode(t, rec, &body)
	if body.Status != "ok" || body.Backend != "sqlite" || body.Version != "test" {
		t.Errorf("body = %+v", body)
	}
}
