// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package mail

import "fmt"

const footer = "\n---\nThis is an automated notification from InstaTrainMe."

// PartnerNotification builds the subject and body for a partnership inquiry.
func PartnerNotification(companyName, contactName, email, organizationType, message string) (subject, body string) {
	if message == "" {
		message = "No message provided"
	}

	subject = fmt.Sprintf("New Partnership Inquiry from %s", companyName)
	body = fmt.Sprintf(`New Partnership Inquiry

Company: %s
Contact Name: %s
Email: %s
Organization Type: %s
Message: %s
%s`, companyName, contactName, email, organizationType, message, footer)
	return subject, body
}

// GymNotification builds the subject and body for a gym registration.
func GymNotification(gymName, location, email string) (subject, body string) {
	subject = fmt.Sprintf("New Gym Registration: %s", gymName)
	body = fmt.Sprintf(`New Gym Registration

Gym Name: %s
Location: %s
Email: %s
%s`, gymName, location, email, footer)
	return subject, body
}

// NewsletterNotification builds the subject and body for a newsletter signup.
func NewsletterNotification(email string) (subject, body string) {
	subject = fmt.Sprintf("New Newsletter Subscription: %s", email)
	body = fmt.Sprintf(`New Newsletter Subscription

Email: %s
%s`, email, footer)
	return subject, body
}
