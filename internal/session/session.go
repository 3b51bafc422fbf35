// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager. The client
// holds only an opaque token cookie; all authority state lives in the
// backend-native session table.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"guidekit/internal/store"
)

// Lifetime is the fixed time-to-live of a session from creation.
const Lifetime = 24 * time.Hour

// New creates a session manager bound to the same backend as the store, so
// sessions live and die with the database the rest of the app talks to.
func New(db *store.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	switch db.Backend() {
	case "postgres":
		sm.Store = postgresstore.New(db.Conn())
	default:
		sm.Store = sqlite3store.New(db.Conn())
	}

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
