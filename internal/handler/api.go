// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP/JSON API.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/instatrainme/site-api/internal/cache"
	"github.com/instatrainme/site-api/internal/middleware"
	"github.com/instatrainme/site-api/internal/notify"
	"github.com/instatrainme/site-api/internal/store"
)

// maxBodySize limits request bodies to 1 MB.
const maxBodySize = 1 << 20

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	sessions  *scs.SessionManager
	cache     cache.Cacher
	cacheTTL  time.Duration
	notifier  *notify.Dispatcher
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// New creates the API handler.
func New(db *sql.DB, sessions *scs.SessionManager, cacher cache.Cacher, cacheTTL time.Duration, notifier *notify.Dispatcher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:        db,
		queries:   store.New(db),
		sessions:  sessions,
		cache:     cacher,
		cacheTTL:  cacheTTL,
		notifier:  notifier,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// respondMessage writes a {"message": ...} response. Used by the auth
// endpoints, matching the session error envelope.
func (h *Handler) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"message": message})
}

// respondError writes an {"error": ...} response. Used by the content and
// lead endpoints.
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondValidationError writes a 400 with field-level details.
func (h *Handler) respondValidationError(w http.ResponseWriter, details []FieldError) {
	h.respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Invalid data",
		"details": details,
	})
}

// respondInternalError logs the error and writes a generic 500. Internal
// detail never reaches the client.
func (h *Handler) respondInternalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON decodes the request body into v. Returns false after writing a
// 400 response if the body is not valid JSON.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	// Reject trailing garbage
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// isAdminRequest reports whether the request carries a session whose user is
// an admin per the authoritative user record. The session flag alone is
// never trusted.
func (h *Handler) isAdminRequest(r *http.Request) bool {
	userID := h.sessions.GetString(r.Context(), middleware.SessionKeyUserID)
	if userID == "" {
		return false
	}
	user, err := h.queries.GetUserByID(r.Context(), userID)
	if err != nil {
		return false
	}
	return user.IsAdmin
}

// nullableString converts a sql.NullString to a *string for JSON encoding.
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
