// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/instatrainme/site-api/internal/store"
)

// adminUserResponse extends the user wire format with timestamps for the
// admin panel.
type adminUserResponse struct {
	userResponse
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toAdminUserResponse(u store.User) adminUserResponse {
	return adminUserResponse{
		userResponse: toUserResponse(u),
		HasPassword:  u.PasswordHash.Valid,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to list users", err)
		return
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toAdminUserResponse(u))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// CreateUser handles POST /api/admin/users. Accounts created here have no
// password and cannot log in until one is set.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		IsAdmin   bool   `json:"isAdmin"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if details := requireEmail(nil, "email", req.Email); len(details) > 0 {
		h.respondValidationError(w, details)
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		ID:        uuid.NewString(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		h.respondInternalError(w, "failed to create user", err)
		return
	}

	h.logger.Info("user created", "user_id", user.ID, "email", user.Email, "is_admin", user.IsAdmin)
	h.respondJSON(w, http.StatusCreated, toAdminUserResponse(user))
}

// UpdateUserAdmin handles PATCH /api/admin/users/{id}. Revoking the admin
// flag takes effect on the user's next request, since authorization always
// re-reads the user record.
func (h *Handler) UpdateUserAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsAdmin *bool `json:"isAdmin"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.IsAdmin == nil {
		h.respondValidationError(w, []FieldError{{Field: "isAdmin", Message: "Required"}})
		return
	}

	user, err := h.queries.UpdateUserAdmin(r.Context(), store.UpdateUserAdminParams{
		IsAdmin:   *req.IsAdmin,
		UpdatedAt: time.Now(),
		ID:        chi.URLParam(r, "id"),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.respondInternalError(w, "failed to update user", err)
		return
	}

	h.logger.Info("user admin flag updated", "user_id", user.ID, "is_admin", user.IsAdmin)
	h.respondJSON(w, http.StatusOK, toAdminUserResponse(user))
}
