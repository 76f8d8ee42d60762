// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/instatrainme/site-api/internal/middleware"
)

// Routes builds the API router. Session middleware wraps everything so the
// auth endpoints and the admin gate share one session context.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.sessions.LoadAndSave)

	requireSession := middleware.RequireSession(h.sessions)
	requireAdmin := middleware.RequireAdmin(h.sessions, h.db)
	publicLimit := middleware.NewPublicRateLimiter(5, 10).Middleware()

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(publicLimit).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.ListBlogPosts)
			r.Get("/slug/{slug}", h.GetBlogPostBySlug)
			r.Get("/{id}", h.GetBlogPost)

			r.Group(func(r chi.Router) {
				r.Use(requireSession, requireAdmin)
				r.Post("/", h.CreateBlogPost)
				r.Patch("/{id}", h.UpdateBlogPost)
				r.Delete("/{id}", h.DeleteBlogPost)
				r.Post("/slugs/backfill", h.BackfillSlugs)
			})
		})

		r.Route("/partners", func(r chi.Router) {
			r.With(publicLimit).Post("/", h.CreatePartner)
			r.With(requireSession, requireAdmin).Get("/", h.ListPartners)
		})

		r.Route("/gyms", func(r chi.Router) {
			r.With(publicLimit).Post("/", h.CreateGym)
			r.With(requireSession, requireAdmin).Get("/", h.ListGyms)
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.With(publicLimit).Post("/", h.CreateNewsletter)
			r.With(requireSession, requireAdmin).Get("/", h.ListNewsletter)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireSession, requireAdmin)
			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Patch("/users/{id}", h.UpdateUserAdmin)
			r.Get("/events", h.ListEvents)
		})
	})

	return r
}

// Healthz handles GET /healthz, reporting database reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		h.respondError(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
