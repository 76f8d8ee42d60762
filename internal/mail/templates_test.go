// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package mail

import (
	"strings"
	"testing"
)

func TestPartnerNotification(t *testing.T) {
	subject, body := PartnerNotification("Acme", "Jane", "jane@acme.com", "gym-chain", "Call me")

	if subject != "New Partnership Inquiry from Acme" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{
		"Company: Acme",
		"Contact Name: Jane",
		"Email: jane@acme.com",
		"Organization Type: gym-chain",
		"Message: Call me",
		"This is an automated notification from InstaTrainMe.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestPartnerNotificationNoMessage(t *testing.T) {
	_, body := PartnerNotification("Acme", "Jane", "jane@acme.com", "gym-chain", "")

	if !strings.Contains(body, "Message: No message provided") {
		t.Errorf("empty message not substituted:\n%s", body)
	}
}

func TestGymNotification(t *testing.T) {
	subject, body := GymNotification("Iron Temple", "Austin, TX", "owner@irontemple.com")

	if subject != "New Gym Registration: Iron Temple" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Gym Name: Iron Temple", "Location: Austin, TX", "Email: owner@irontemple.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestNewsletterNotification(t *testing.T) {
	subject, body := NewsletterNotification("fan@example.com")

	if subject != "New Newsletter Subscription: fan@example.com" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "Email: fan@example.com") {
		t.Errorf("body missing email:\n%s", body)
	}
}
