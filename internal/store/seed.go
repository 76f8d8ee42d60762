// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/instatrainme/site-api/internal/auth"
)

// Default admin credentials for first-run operator pickup. The temporary
// password is logged at startup and must be changed after the first login.
const (
	DefaultAdminEmail    = "admin@instatrainme.com"
	DefaultAdminPassword = "Admin123!"
)

// SeedAdmin ensures a usable admin account exists. It is idempotent: if any
// user already has both the admin flag and a password hash, it does nothing.
// Otherwise it creates the canonical admin account, or repairs an existing
// one that is missing the password or the flag, rather than duplicating it.
func SeedAdmin(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	users, err := queries.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	for _, u := range users {
		if u.IsAdmin && u.PasswordHash.Valid {
			slog.Info("admin user already exists, skipping seed")
			return nil
		}
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()

	existing, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	switch {
	case err == nil:
		// Repair in place: set the password, and the flag if missing.
		if err := queries.UpdateUserPassword(ctx, UpdateUserPasswordParams{
			PasswordHash: sql.NullString{String: passwordHash, Valid: true},
			UpdatedAt:    now,
			ID:           existing.ID,
		}); err != nil {
			return fmt.Errorf("updating admin password: %w", err)
		}
		if !existing.IsAdmin {
			if _, err := queries.UpdateUserAdmin(ctx, UpdateUserAdminParams{
				IsAdmin:   true,
				UpdatedAt: now,
				ID:        existing.ID,
			}); err != nil {
				return fmt.Errorf("setting admin flag: %w", err)
			}
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := queries.CreateUser(ctx, CreateUserParams{
			ID:           uuid.NewString(),
			Email:        DefaultAdminEmail,
			FirstName:    "Admin",
			LastName:     "User",
			PasswordHash: sql.NullString{String: passwordHash, Valid: true},
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
	default:
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Info stays below the event-log threshold, so the plaintext credential
	// lands in stdout only, never in the events table.
	slog.Info("created temporary admin credentials, change the password after first login",
		"email", DefaultAdminEmail,
		"password", DefaultAdminPassword,
	)

	return nil
}
