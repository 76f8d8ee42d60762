// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver (matches internal/store/db.go)

	"github.com/instatrainme/site-api/internal/cache"
	"github.com/instatrainme/site-api/internal/notify"
	"github.com/instatrainme/site-api/internal/session"
	"github.com/instatrainme/site-api/internal/store"
)

// testSchema mirrors the production migration for in-memory test databases.
const testSchema = `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT,
		is_admin INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);

	CREATE TABLE blog_posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		author TEXT NOT NULL,
		read_time TEXT NOT NULL,
		image_url TEXT,
		slug TEXT UNIQUE,
		published INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE partner_submissions (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		contact_name TEXT NOT NULL,
		email TEXT NOT NULL,
		organization_type TEXT NOT NULL,
		message TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE gym_submissions (
		id TEXT PRIMARY KEY,
		gym_name TEXT NOT NULL,
		location TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE newsletter_subscriptions (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL
	);
`

// captureMailer records notification sends for assertions.
type captureMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *captureMailer) Send(_ context.Context, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, subject)
	return nil
}

func (m *captureMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// testApp bundles the running test server and its collaborators.
type testApp struct {
	db     *sql.DB
	server *httptest.Server
	client *http.Client
	mailer *captureMailer
}

// newTestApp builds the full application against an in-memory database and
// returns a client with a cookie jar so session flows work end to end.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	mailer := &captureMailer{}
	dispatcher := notify.NewDispatcher(mailer, nil, notify.Config{Workers: 1})
	dispatcher.Start()

	cacher := cache.NewMemoryCache(time.Minute)

	h := New(db, session.New(db, true), cacher, time.Minute, dispatcher, nil)
	server := httptest.NewServer(h.Routes())

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	t.Cleanup(func() {
		server.Close()
		dispatcher.Stop()
		_ = cacher.Close()
		_ = db.Close()
	})

	return &testApp{
		db:     db,
		server: server,
		client: &http.Client{Jar: jar},
		mailer: mailer,
	}
}

// do issues a request with an optional JSON body and returns the response
// with its decoded body.
func (a *testApp) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, data
}

// seedAdmin runs the startup seed so the default admin account exists.
func (a *testApp) seedAdmin(t *testing.T) {
	t.Helper()
	if err := store.SeedAdmin(context.Background(), a.db); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
}

// loginAdmin seeds and authenticates the default admin account.
func (a *testApp) loginAdmin(t *testing.T) {
	t.Helper()
	a.seedAdmin(t)

	resp, body := a.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"`+store.DefaultAdminEmail+`","password":"`+store.DefaultAdminPassword+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", resp.StatusCode, body)
	}
}

// decode unmarshals a JSON body, failing the test on error.
func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to unmarshal %s: %v", data, err)
	}
	return v
}

// countRows returns the number of rows in a table.
func (a *testApp) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return n
}
