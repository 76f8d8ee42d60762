// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"regexp"
	"strings"
)

// FieldError describes a single failed field in a validation error response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail reports whether s looks like an email address.
func validEmail(s string) bool {
	return len(s) <= 254 && emailRegexp.MatchString(s)
}

// requireField appends a "required" error when the trimmed value is empty.
func requireField(details []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		details = append(details, FieldError{Field: field, Message: "Required"})
	}
	return details
}

// requireEmail appends an error when the value is empty or not an email.
func requireEmail(details []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(details, FieldError{Field: field, Message: "Required"})
	}
	if !validEmail(value) {
		return append(details, FieldError{Field: field, Message: "Invalid email"})
	}
	return details
}
