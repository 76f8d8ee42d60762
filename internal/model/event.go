// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds shared domain constants.
package model

// Event levels for the operational event log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories.
const (
	EventCategoryAuth   = "auth"
	EventCategoryBlog   = "blog"
	EventCategoryLead   = "lead"
	EventCategoryMail   = "mail"
	EventCategorySystem = "system"
)
