// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/instatrainme/site-api/internal/auth"
	"github.com/instatrainme/site-api/internal/middleware"
	"github.com/instatrainme/site-api/internal/store"
)

// userResponse is the wire representation of a user.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func toUserResponse(u store.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		h.respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// The response must not reveal whether the email exists, so unknown
	// email, missing hash, and wrong password all produce the same 401.
	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("failed to load user for login", "error", err)
		h.respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !user.PasswordHash.Valid {
		h.respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash.String)
	if err != nil {
		h.logger.Error("failed to verify password", "error", err, "user_id", user.ID)
		h.respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !ok {
		h.respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	// Rotate the session token on privilege change to prevent fixation
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.logger.Error("failed to renew session token", "error", err)
		h.respondMessage(w, http.StatusInternalServerError, "Session error")
		return
	}

	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sessions.Put(r.Context(), middleware.SessionKeyIsAdmin, user.IsAdmin)

	h.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout. Destroying the server-side session
// record revokes the cookie immediately.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.Error("failed to destroy session", "error", err)
		h.respondMessage(w, http.StatusInternalServerError, "Logout error")
		return
	}

	h.respondMessage(w, http.StatusOK, "Logged out successfully")
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetString(r.Context(), middleware.SessionKeyUserID)
	if userID == "" {
		h.respondMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account deleted while the session was live
			_ = h.sessions.Destroy(r.Context())
			h.respondMessage(w, http.StatusUnauthorized, "User not found")
			return
		}
		h.logger.Error("failed to load current user", "error", err, "user_id", userID)
		h.respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, toUserResponse(user))
}
