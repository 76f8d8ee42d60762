// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/instatrainme/site-api/internal/store"
)

func TestCreateUser(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, body := app.do(t, http.MethodPost, "/api/admin/users",
		`{"email":"coach@example.com","firstName":"Sam","lastName":"Lee"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user = %d: %s", resp.StatusCode, body)
	}

	user := decode[adminUserResponse](t, body)
	if user.Email != "coach@example.com" || user.IsAdmin {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.HasPassword {
		t.Error("invited user should have no password")
	}

	// The new account cannot log in without a password
	resp, _ = app.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"coach@example.com","password":"anything"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("passwordless login = %d, want 401", resp.StatusCode)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, body := app.do(t, http.MethodPost, "/api/admin/users",
		`{"email":"`+store.DefaultAdminEmail+`"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate user = %d, want 400", resp.StatusCode)
	}
	if msg := decode[map[string]string](t, body); msg["error"] != "Email already exists" {
		t.Errorf("duplicate error = %q", msg["error"])
	}
}

func TestUpdateUserAdminFlag(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, body := app.do(t, http.MethodPost, "/api/admin/users", `{"email":"coach@example.com"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user = %d", resp.StatusCode)
	}
	created := decode[adminUserResponse](t, body)

	resp, body = app.do(t, http.MethodPatch, "/api/admin/users/"+created.ID, `{"isAdmin":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch user = %d: %s", resp.StatusCode, body)
	}
	if updated := decode[adminUserResponse](t, body); !updated.IsAdmin {
		t.Error("admin flag not granted")
	}

	// Missing isAdmin field is a validation error, not a no-op
	resp, _ = app.do(t, http.MethodPatch, "/api/admin/users/"+created.ID, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("patch without isAdmin = %d, want 400", resp.StatusCode)
	}

	resp, _ = app.do(t, http.MethodPatch, "/api/admin/users/no-such-id", `{"isAdmin":false}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("patch unknown user = %d, want 404", resp.StatusCode)
	}
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, body := app.do(t, http.MethodGet, "/api/admin/users", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list users = %d", resp.StatusCode)
	}

	users := decode[[]adminUserResponse](t, body)
	if len(users) != 1 {
		t.Fatalf("expected 1 seeded user, got %d", len(users))
	}
	if users[0].Email != store.DefaultAdminEmail || !users[0].IsAdmin || !users[0].HasPassword {
		t.Errorf("unexpected seeded admin: %+v", users[0])
	}
}

func TestListEvents(t *testing.T) {
	app := newTestApp(t)
	app.loginAdmin(t)

	resp, body := app.do(t, http.MethodGet, "/api/admin/events", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list events = %d", resp.StatusCode)
	}
	if events := decode[[]eventResponse](t, body); events == nil {
		t.Error("events list should encode as an empty array")
	}

	for _, limit := range []string{"0", "1001", "abc"} {
		resp, _ = app.do(t, http.MethodGet, "/api/admin/events?limit="+limit, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("limit=%s = %d, want 400", limit, resp.StatusCode)
		}
	}
}
