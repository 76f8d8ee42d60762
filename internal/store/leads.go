// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// PartnerSubmission is a partnership inquiry from the public site. Lead
// submissions are an append-only ledger: there are no update or delete
// operations.
type PartnerSubmission struct {
	ID               string
	CompanyName      string
	ContactName      string
	Email            string
	OrganizationType string
	Message          sql.NullString
	CreatedAt        time.Time
}

// GymSubmission is a gym listing request from the public site.
type GymSubmission struct {
	ID        string
	GymName   string
	Location  string
	Email     string
	CreatedAt time.Time
}

// NewsletterSubscription is a newsletter signup. Email is unique at the
// store level; the constraint violation is the authoritative duplicate signal.
type NewsletterSubscription struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// CreatePartnerSubmissionParams holds the fields for CreatePartnerSubmission.
type CreatePartnerSubmissionParams struct {
	ID               string
	CompanyName      string
	ContactName      string
	Email            string
	OrganizationType string
	Message          sql.NullString
	CreatedAt        time.Time
}

// CreatePartnerSubmission inserts a partner inquiry.
func (q *Queries) CreatePartnerSubmission(ctx context.Context, arg CreatePartnerSubmissionParams) (PartnerSubmission, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO partner_submissions (id, company_name, contact_name, email, organization_type, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.CompanyName, arg.ContactName, arg.Email, arg.OrganizationType, arg.Message, arg.CreatedAt,
	)
	if err != nil {
		return PartnerSubmission{}, err
	}
	return PartnerSubmission(arg), nil
}

// ListPartnerSubmissions returns all partner inquiries, newest first.
func (q *Queries) ListPartnerSubmissions(ctx context.Context) ([]PartnerSubmission, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, company_name, contact_name, email, organization_type, message, created_at
		 FROM partner_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []PartnerSubmission
	for rows.Next() {
		var s PartnerSubmission
		if err := rows.Scan(&s.ID, &s.CompanyName, &s.ContactName, &s.Email, &s.OrganizationType, &s.Message, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CreateGymSubmissionParams holds the fields for CreateGymSubmission.
type CreateGymSubmissionParams struct {
	ID        string
	GymName   string
	Location  string
	Email     string
	CreatedAt time.Time
}

// CreateGymSubmission inserts a gym listing request.
func (q *Queries) CreateGymSubmission(ctx context.Context, arg CreateGymSubmissionParams) (GymSubmission, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO gym_submissions (id, gym_name, location, email, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.ID, arg.GymName, arg.Location, arg.Email, arg.CreatedAt,
	)
	if err != nil {
		return GymSubmission{}, err
	}
	return GymSubmission(arg), nil
}

// ListGymSubmissions returns all gym listing requests, newest first.
func (q *Queries) ListGymSubmissions(ctx context.Context) ([]GymSubmission, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, gym_name, location, email, created_at
		 FROM gym_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []GymSubmission
	for rows.Next() {
		var s GymSubmission
		if err := rows.Scan(&s.ID, &s.GymName, &s.Location, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CreateNewsletterSubscriptionParams holds the fields for CreateNewsletterSubscription.
type CreateNewsletterSubscriptionParams struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// CreateNewsletterSubscription inserts a newsletter signup. A duplicate email
// fails with a UNIQUE constraint violation; use IsUniqueViolation to detect it.
func (q *Queries) CreateNewsletterSubscription(ctx context.Context, arg CreateNewsletterSubscriptionParams) (NewsletterSubscription, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscriptions (id, email, created_at) VALUES (?, ?, ?)`,
		arg.ID, arg.Email, arg.CreatedAt,
	)
	if err != nil {
		return NewsletterSubscription{}, err
	}
	return NewsletterSubscription(arg), nil
}

// GetNewsletterByEmail returns the subscription for an email, or sql.ErrNoRows.
func (q *Queries) GetNewsletterByEmail(ctx context.Context, email string) (NewsletterSubscription, error) {
	var s NewsletterSubscription
	err := q.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM newsletter_subscriptions WHERE email = ?`, email).
		Scan(&s.ID, &s.Email, &s.CreatedAt)
	return s, err
}

// ListNewsletterSubscriptions returns all signups, newest first.
func (q *Queries) ListNewsletterSubscriptions(ctx context.Context) ([]NewsletterSubscription, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, email, created_at FROM newsletter_subscriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []NewsletterSubscription
	for rows.Next() {
		var s NewsletterSubscription
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
