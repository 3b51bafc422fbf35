// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"guidekit/internal/middleware"
)

// API bundles the handlers and middleware the route table wires together.
type API struct {
	Sessions   *scs.SessionManager
	Protection *middleware.LoginProtection
	UploadsDir string

	Posts      *PostsHandler
	Categories *CategoriesHandler
	FAQs       *FAQsHandler
	Training   *TrainingHandler
	Settings   *SettingsHandler
	Auth       *AuthHandler
	Upload     *UploadHandler
	Health     *HealthHandler
}

// Routes mounts the full HTTP surface on r. Outer instrumentation and the
// session middleware are the caller's concern and must be installed first.
func (a *API) Routes(r chi.Router) {
	r.Get("/health", a.Health.Health)

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Get("/posts", a.Posts.List)
		r.Get("/posts/{id}", a.Posts.Get)
		r.Get("/categories", a.Categories.List)
		r.Get("/faqs", a.FAQs.List)
		r.Get("/faqs/{id}", a.FAQs.Get)
		r.Get("/training-process", a.Training.List)
		r.Get("/settings", a.Settings.Get)

		// Session endpoints
		r.With(a.Protection.Middleware()).Post("/admin/login", a.Auth.Login)
		r.With(middleware.NoCache).Get("/admin/check", a.Auth.Check)
		r.Post("/admin/logout", a.Auth.Logout)

		// Every mutating route requires an authenticated admin session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(a.Sessions))

			r.Post("/posts", a.Posts.Create)
			r.Put("/posts/{id}", a.Posts.Update)
			r.Post("/posts/delete", a.Posts.Delete)

			r.Post("/categories", a.Categories.Create)
			r.Delete("/categories/{id}", a.Categories.Delete)
			r.Post("/categories/bulk", a.Categories.BulkReplace)

			r.Post("/faqs", a.FAQs.Create)
			r.Put("/faqs/{id}", a.FAQs.Update)
			r.Post("/faqs/delete", a.FAQs.Delete)

			r.Post("/training-process", a.Training.Replace)
			r.Post("/settings", a.Settings.Update)
			r.Post("/upload", a.Upload.Upload)
		})
	})

	// Uploaded images are public and immutable once stored.
	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.UploadsDir)))
	r.With(middleware.StaticCache(86400)).Get("/uploads/*", uploadsFS.ServeHTTP)
}
