// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail sends lead notification emails through Mailgun.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailer sends a plain-text message to the sales inbox.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// MailgunMailer sends messages through the Mailgun API.
type MailgunMailer struct {
	client *mailgun.MailgunImpl
	domain string
	to     string
}

// NewMailgunMailer creates a mailer for the given Mailgun domain and API key.
// Notifications are addressed to the given inbox.
func NewMailgunMailer(domain, apiKey, to string) *MailgunMailer {
	return &MailgunMailer{
		client: mailgun.NewMailgun(domain, apiKey),
		domain: domain,
		to:     to,
	}
}

// Send delivers a plain-text message. The from address is derived from the
// Mailgun domain.
func (m *MailgunMailer) Send(ctx context.Context, subject, body string) error {
	from := fmt.Sprintf("InstaTrainMe Notifications <noreply@%s>", m.domain)
	msg := m.client.NewMessage(from, subject, body, m.to)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := m.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// DisabledMailer is the no-op mailer used when Mailgun is not configured.
// It logs a single warning on first use and silently drops messages after.
type DisabledMailer struct {
	once sync.Once
}

// NewDisabledMailer creates a no-op mailer.
func NewDisabledMailer() *DisabledMailer {
	return &DisabledMailer{}
}

// Send drops the message.
func (m *DisabledMailer) Send(_ context.Context, _, _ string) error {
	m.once.Do(func() {
		slog.Warn("mailgun not configured, email notifications disabled")
	})
	return nil
}

var (
	_ Mailer = (*MailgunMailer)(nil)
	_ Mailer = (*DisabledMailer)(nil)
)
