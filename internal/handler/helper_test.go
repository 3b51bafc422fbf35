// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"guidekit/internal/auth"
	"guidekit/internal/middleware"
	"guidekit/internal/service"
	"guidekit/internal/store"
	"guidekit/internal/testutil"
	"guidekit/internal/version"
)

// testServer wires the full API route table over a temporary database.
type testServer struct {
	router   chi.Router
	db       *store.DB
	sessions *scs.SessionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	// In-memory sessions keep handler tests off the sessions table.
	sessions := scs.New()
	sessions.Lifetime = time.Hour

	settings := store.NewSettingsStore(db)

	uploadsDir := t.TempDir()
	uploads, err := service.NewUploadService(uploadsDir)
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}

	// Generous limits so tests never trip the login throttle.
	protection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: 1000,
	})

	// The production route table, minus the outer instrumentation stack.
	api := &API{
		Sessions:   sessions,
		Protection: protection,
		UploadsDir: uploadsDir,

		Posts:      NewPostsHandler(store.NewPostStore(db)),
		Categories: NewCategoriesHandler(store.NewCategoryStore(db)),
		FAQs:       NewFAQsHandler(store.NewFAQStore(db)),
		Training:   NewTrainingHandler(store.NewTrainingStore(db)),
		Settings:   NewSettingsHandler(settings),
		Auth:       NewAuthHandler(sessions, settings, protection),
		Upload:     NewUploadHandler(uploads),
		Health:     NewHealthHandler(db, version.Info{Version: "test"}),
	}

	r := chi.NewRouter()
	r.Use(sessions.LoadAndSave)
	api.Routes(r)

	return &testServer{router: r, db: db, sessions: sessions}
}

// request performs one request against the router, JSON-encoding body when
// it is non-nil and attaching the given session cookies.
func (ts *testServer) request(t *testing.T, method, target string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// login authenticates with the default admin password and returns the
// session cookies for subsequent requests.
func (ts *testServer) login(t *testing.T) []*http.Cookie {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/admin/login",
		map[string]string{"password": auth.DefaultAdminPassword}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no session cookie")
	}
	return cookies
}

// decode unmarshals a recorded JSON body.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
