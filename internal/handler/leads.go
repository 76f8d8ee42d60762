// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/instatrainme/site-api/internal/store"
)

// partnerResponse is the wire representation of a partner submission.
type partnerResponse struct {
	ID               string    `json:"id"`
	CompanyName      string    `json:"companyName"`
	ContactName      string    `json:"contactName"`
	Email            string    `json:"email"`
	OrganizationType string    `json:"organizationType"`
	Message          *string   `json:"message"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toPartnerResponse(s store.PartnerSubmission) partnerResponse {
	return partnerResponse{
		ID:               s.ID,
		CompanyName:      s.CompanyName,
		ContactName:      s.ContactName,
		Email:            s.Email,
		OrganizationType: s.OrganizationType,
		Message:          nullableString(s.Message),
		CreatedAt:        s.CreatedAt,
	}
}

// gymResponse is the wire representation of a gym submission.
type gymResponse struct {
	ID        string    `json:"id"`
	GymName   string    `json:"gymName"`
	Location  string    `json:"location"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toGymResponse(s store.GymSubmission) gymResponse {
	return gymResponse{
		ID:        s.ID,
		GymName:   s.GymName,
		Location:  s.Location,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}

// newsletterResponse is the wire representation of a newsletter subscription.
type newsletterResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNewsletterResponse(s store.NewsletterSubscription) newsletterResponse {
	return newsletterResponse{ID: s.ID, Email: s.Email, CreatedAt: s.CreatedAt}
}

// CreatePartner handles POST /api/partners. The notification email is
// dispatched after the row is committed and never affects the response.
func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName      string  `json:"companyName"`
		ContactName      string  `json:"contactName"`
		Email            string  `json:"email"`
		OrganizationType string  `json:"organizationType"`
		Message          *string `json:"message"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var details []FieldError
	details = requireField(details, "companyName", req.CompanyName)
	details = requireField(details, "contactName", req.ContactName)
	details = requireEmail(details, "email", req.Email)
	details = requireField(details, "organizationType", req.OrganizationType)
	if len(details) > 0 {
		h.respondValidationError(w, details)
		return
	}

	var message sql.NullString
	if req.Message != nil {
		message = sql.NullString{String: *req.Message, Valid: true}
	}

	sub, err := h.queries.CreatePartnerSubmission(r.Context(), store.CreatePartnerSubmissionParams{
		ID:               uuid.NewString(),
		CompanyName:      req.CompanyName,
		ContactName:      req.ContactName,
		Email:            req.Email,
		OrganizationType: req.OrganizationType,
		Message:          message,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		h.respondInternalError(w, "failed to create partner submission", err)
		return
	}

	h.notifier.PartnerInquiry(sub)
	h.logger.Info("partner inquiry received", "submission_id", sub.ID, "company", sub.CompanyName)
	h.respondJSON(w, http.StatusCreated, toPartnerResponse(sub))
}

// ListPartners handles GET /api/partners (admin only).
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	subs, err := h.queries.ListPartnerSubmissions(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to list partner submissions", err)
		return
	}

	out := make([]partnerResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toPartnerResponse(s))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// CreateGym handles POST /api/gyms.
func (h *Handler) CreateGym(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GymName  string `json:"gymName"`
		Location string `json:"location"`
		Email    string `json:"email"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var details []FieldError
	details = requireField(details, "gymName", req.GymName)
	details = requireField(details, "location", req.Location)
	details = requireEmail(details, "email", req.Email)
	if len(details) > 0 {
		h.respondValidationError(w, details)
		return
	}

	sub, err := h.queries.CreateGymSubmission(r.Context(), store.CreateGymSubmissionParams{
		ID:        uuid.NewString(),
		GymName:   req.GymName,
		Location:  req.Location,
		Email:     req.Email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.respondInternalError(w, "failed to create gym submission", err)
		return
	}

	h.notifier.GymListing(sub)
	h.logger.Info("gym listing request received", "submission_id", sub.ID, "gym", sub.GymName)
	h.respondJSON(w, http.StatusCreated, toGymResponse(sub))
}

// ListGyms handles GET /api/gyms (admin only).
func (h *Handler) ListGyms(w http.ResponseWriter, r *http.Request) {
	subs, err := h.queries.ListGymSubmissions(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to list gym submissions", err)
		return
	}

	out := make([]gymResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toGymResponse(s))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// CreateNewsletter handles POST /api/newsletter. Uniqueness is enforced by
// the store constraint; the existence pre-check is only a fast path, so a
// racing duplicate still converges to a single row.
func (h *Handler) CreateNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if details := requireEmail(nil, "email", req.Email); len(details) > 0 {
		h.respondValidationError(w, details)
		return
	}

	_, err := h.queries.GetNewsletterByEmail(r.Context(), req.Email)
	if err == nil {
		h.respondError(w, http.StatusBadRequest, "Email already subscribed")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		h.respondInternalError(w, "failed to check newsletter subscription", err)
		return
	}

	sub, err := h.queries.CreateNewsletterSubscription(r.Context(), store.CreateNewsletterSubscriptionParams{
		ID:        uuid.NewString(),
		Email:     req.Email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.respondError(w, http.StatusBadRequest, "Email already subscribed")
			return
		}
		h.respondInternalError(w, "failed to create newsletter subscription", err)
		return
	}

	h.notifier.NewsletterSignup(sub.Email)
	h.logger.Info("newsletter signup received", "submission_id", sub.ID)
	h.respondJSON(w, http.StatusCreated, toNewsletterResponse(sub))
}

// ListNewsletter handles GET /api/newsletter (admin only).
func (h *Handler) ListNewsletter(w http.ResponseWriter, r *http.Request) {
	subs, err := h.queries.ListNewsletterSubscriptions(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to list newsletter subscriptions", err)
		return
	}

	out := make([]newsletterResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toNewsletterResponse(s))
	}
	h.respondJSON(w, http.StatusOK, out)
}
