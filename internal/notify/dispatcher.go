// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify dispatches lead notification emails in the background.
// Dispatch is fire-and-forget: the HTTP request that triggers a
// notification never waits for, or fails because of, email delivery.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/instatrainme/site-api/internal/mail"
	"github.com/instatrainme/site-api/internal/store"
)

// Dispatcher queues notification emails and delivers them on a pool of
// background workers.
type Dispatcher struct {
	mailer  mail.Mailer
	logger  *slog.Logger
	queue   chan notification
	workers int
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// notification is a queued email.
type notification struct {
	kind    string
	subject string
	body    string
}

// Config holds dispatcher configuration.
type Config struct {
	Workers int // Number of concurrent delivery workers
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers: 3,
	}
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(mailer mail.Mailer, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		mailer:  mailer,
		logger:  logger,
		queue:   make(chan notification, 100),
		workers: cfg.Workers,
		done:    make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting notification dispatcher", "workers", d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop stops the dispatcher and waits for in-flight deliveries to finish.
// Queued notifications that no worker has picked up yet are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.logger.Info("stopping notification dispatcher")
	close(d.done)
	d.wg.Wait()
	d.logger.Info("notification dispatcher stopped")
}

// worker delivers queued notifications.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	d.logger.Debug("notification worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			d.logger.Debug("notification worker stopping", "worker_id", id)
			return
		case n := <-d.queue:
			// Delivery errors are logged and swallowed
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := d.mailer.Send(ctx, n.subject, n.body); err != nil {
				d.logger.Error("failed to send notification email",
					"error", err, "kind", n.kind, "subject", n.subject)
			} else {
				d.logger.Info("notification email sent", "kind", n.kind)
			}
			cancel()
		}
	}
}

// enqueue queues a notification without blocking. If the queue is full the
// notification is dropped with a warning.
func (d *Dispatcher) enqueue(n notification) {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		d.logger.Warn("dispatcher not running, dropping notification", "kind", n.kind)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping notification", "kind", n.kind)
	}
}

// PartnerInquiry queues a notification for a new partnership inquiry.
func (d *Dispatcher) PartnerInquiry(sub store.PartnerSubmission) {
	subject, body := mail.PartnerNotification(
		sub.CompanyName, sub.ContactName, sub.Email, sub.OrganizationType, sub.Message.String)
	d.enqueue(notification{kind: "partner", subject: subject, body: body})
}

// GymListing queues a notification for a new gym registration.
func (d *Dispatcher) GymListing(sub store.GymSubmission) {
	subject, body := mail.GymNotification(sub.GymName, sub.Location, sub.Email)
	d.enqueue(notification{kind: "gym", subject: subject, body: body})
}

// NewsletterSignup queues a notification for a new newsletter subscription.
func (d *Dispatcher) NewsletterSignup(email string) {
	subject, body := mail.NewsletterNotification(email)
	d.enqueue(notification{kind: "newsletter", subject: subject, body: body})
}
