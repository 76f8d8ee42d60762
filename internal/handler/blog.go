// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/instatrainme/site-api/internal/cache"
	"github.com/instatrainme/site-api/internal/store"
	"github.com/instatrainme/site-api/internal/util"
)

// blogPublishedCacheKey caches the serialized published-post list, the
// hottest read path on the public site.
const blogPublishedCacheKey = "blog:published"

// blogPostResponse is the wire representation of a blog post.
type blogPostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ReadTime  string    `json:"readTime"`
	ImageURL  *string   `json:"imageUrl"`
	Slug      *string   `json:"slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
}

func toBlogPostResponse(p store.BlogPost) blogPostResponse {
	return blogPostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Category:  p.Category,
		Author:    p.Author,
		ReadTime:  p.ReadTime,
		ImageURL:  nullableString(p.ImageURL),
		Slug:      nullableString(p.Slug),
		Published: p.Published,
		CreatedAt: p.CreatedAt,
	}
}

func toBlogPostResponses(posts []store.BlogPost) []blogPostResponse {
	out := make([]blogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogPostResponse(p))
	}
	return out
}

// ListBlogPosts handles GET /api/blog?published=true|false.
// Drafts are only visible to admins; everyone else gets the published list
// regardless of the query parameter.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") != "false"
	if !publishedOnly && !h.isAdminRequest(r) {
		publishedOnly = true
	}

	if publishedOnly {
		if h.cache != nil {
			if data, err := h.cache.Get(r.Context(), blogPublishedCacheKey); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(data)
				return
			} else if !errors.Is(err, cache.ErrCacheMiss) {
				h.logger.Warn("blog cache read failed", "error", err)
			}
		}

		posts, err := h.queries.ListPublishedBlogPosts(r.Context())
		if err != nil {
			h.respondInternalError(w, "failed to list published blog posts", err)
			return
		}

		h.respondCachedJSON(w, r, toBlogPostResponses(posts))
		return
	}

	posts, err := h.queries.ListBlogPosts(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to list blog posts", err)
		return
	}
	h.respondJSON(w, http.StatusOK, toBlogPostResponses(posts))
}

// GetBlogPost handles GET /api/blog/{id}. Unpublished posts are 404 for
// everyone but admins, indistinguishable from absent posts.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.queries.GetBlogPostByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		h.respondInternalError(w, "failed to get blog post", err)
		return
	}

	if !post.Published && !h.isAdminRequest(r) {
		h.respondError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	h.respondJSON(w, http.StatusOK, toBlogPostResponse(post))
}

// GetBlogPostBySlug handles GET /api/blog/slug/{slug}.
func (h *Handler) GetBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.queries.GetBlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		h.respondInternalError(w, "failed to get blog post by slug", err)
		return
	}

	if !post.Published && !h.isAdminRequest(r) {
		h.respondError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	h.respondJSON(w, http.StatusOK, toBlogPostResponse(post))
}

// blogPostInput is the create/update request body. Pointer fields
// distinguish "absent" from "set to zero value" for partial updates.
type blogPostInput struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Category  *string `json:"category"`
	Author    *string `json:"author"`
	ReadTime  *string `json:"readTime"`
	ImageURL  *string `json:"imageUrl"`
	Slug      *string `json:"slug"`
	Published *bool   `json:"published"`
}

// CreateBlogPost handles POST /api/blog (admin only).
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	var details []FieldError
	details = requireField(details, "title", str(req.Title))
	details = requireField(details, "excerpt", str(req.Excerpt))
	details = requireField(details, "content", str(req.Content))
	details = requireField(details, "category", str(req.Category))
	details = requireField(details, "author", str(req.Author))
	details = requireField(details, "readTime", str(req.ReadTime))
	if len(details) > 0 {
		h.respondValidationError(w, details)
		return
	}

	// Slugs are not derived at creation time. A post created without one
	// keeps a null slug until the backfill assigns it.
	var slug sql.NullString
	if req.Slug != nil && *req.Slug != "" {
		if !util.IsValidSlug(*req.Slug) {
			h.respondValidationError(w, []FieldError{{Field: "slug", Message: "Invalid slug"}})
			return
		}
		taken, err := h.queries.SlugExists(r.Context(), *req.Slug)
		if err != nil {
			h.respondInternalError(w, "failed to check slug", err)
			return
		}
		if taken > 0 {
			h.respondValidationError(w, []FieldError{{Field: "slug", Message: "Slug already in use"}})
			return
		}
		slug = sql.NullString{String: *req.Slug, Valid: true}
	}

	var imageURL sql.NullString
	if req.ImageURL != nil && *req.ImageURL != "" {
		imageURL = sql.NullString{String: *req.ImageURL, Valid: true}
	}

	post, err := h.queries.CreateBlogPost(r.Context(), store.CreateBlogPostParams{
		ID:        uuid.NewString(),
		Title:     *req.Title,
		Excerpt:   h.sanitizer.Sanitize(*req.Excerpt),
		Content:   h.sanitizer.Sanitize(*req.Content),
		Category:  *req.Category,
		Author:    *req.Author,
		ReadTime:  *req.ReadTime,
		ImageURL:  imageURL,
		Slug:      slug,
		Published: req.Published != nil && *req.Published,
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.respondInternalError(w, "failed to create blog post", err)
		return
	}

	h.invalidateBlogCache(r)
	h.logger.Info("blog post created", "post_id", post.ID, "title", post.Title)
	h.respondJSON(w, http.StatusCreated, toBlogPostResponse(post))
}

// UpdateBlogPost handles PATCH /api/blog/{id} (admin only). Absent fields
// keep their stored value.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.queries.GetBlogPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		h.respondInternalError(w, "failed to get blog post", err)
		return
	}

	var req blogPostInput
	if !h.decodeJSON(w, r, &req) {
		return
	}

	params := store.UpdateBlogPostParams{
		ID:        existing.ID,
		Title:     existing.Title,
		Excerpt:   existing.Excerpt,
		Content:   existing.Content,
		Category:  existing.Category,
		Author:    existing.Author,
		ReadTime:  existing.ReadTime,
		ImageURL:  existing.ImageURL,
		Slug:      existing.Slug,
		Published: existing.Published,
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			h.respondValidationError(w, []FieldError{{Field: "title", Message: "Required"}})
			return
		}
		params.Title = *req.Title
	}
	if req.Excerpt != nil {
		params.Excerpt = h.sanitizer.Sanitize(*req.Excerpt)
	}
	if req.Content != nil {
		params.Content = h.sanitizer.Sanitize(*req.Content)
	}
	if req.Category != nil {
		params.Category = *req.Category
	}
	if req.Author != nil {
		params.Author = *req.Author
	}
	if req.ReadTime != nil {
		params.ReadTime = *req.ReadTime
	}
	if req.ImageURL != nil {
		params.ImageURL = sql.NullString{String: *req.ImageURL, Valid: *req.ImageURL != ""}
	}
	if req.Published != nil {
		params.Published = *req.Published
	}
	if req.Slug != nil {
		slug := *req.Slug
		if !util.IsValidSlug(slug) {
			h.respondValidationError(w, []FieldError{{Field: "slug", Message: "Invalid slug"}})
			return
		}
		taken, err := h.queries.SlugExistsExcluding(r.Context(), store.SlugExistsExcludingParams{Slug: slug, ID: id})
		if err != nil {
			h.respondInternalError(w, "failed to check slug", err)
			return
		}
		if taken > 0 {
			h.respondValidationError(w, []FieldError{{Field: "slug", Message: "Slug already in use"}})
			return
		}
		params.Slug = sql.NullString{String: slug, Valid: true}
	}

	post, err := h.queries.UpdateBlogPost(r.Context(), params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.respondError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		h.respondInternalError(w, "failed to update blog post", err)
		return
	}

	h.invalidateBlogCache(r)
	h.respondJSON(w, http.StatusOK, toBlogPostResponse(post))
}

// DeleteBlogPost handles DELETE /api/blog/{id} (admin only).
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	existed, err := h.queries.DeleteBlogPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondInternalError(w, "failed to delete blog post", err)
		return
	}
	if !existed {
		h.respondError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	h.invalidateBlogCache(r)
	w.WriteHeader(http.StatusNoContent)
}

// BackfillSlugs handles POST /api/blog/slugs/backfill (admin only).
// Idempotent: a second run touches zero rows.
func (h *Handler) BackfillSlugs(w http.ResponseWriter, r *http.Request) {
	updated, err := h.queries.BackfillBlogSlugs(r.Context())
	if err != nil {
		h.respondInternalError(w, "failed to backfill slugs", err)
		return
	}

	if updated > 0 {
		h.invalidateBlogCache(r)
		h.logger.Info("backfilled blog slugs", "count", updated)
	}
	h.respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// respondCachedJSON writes the response and stores the encoded body in the
// cache for subsequent reads.
func (h *Handler) respondCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.respondInternalError(w, "failed to encode response", err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), blogPublishedCacheKey, data, h.cacheTTL); err != nil {
			h.logger.Warn("blog cache write failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// invalidateBlogCache drops the cached published list after any mutation.
func (h *Handler) invalidateBlogCache(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(r.Context(), blogPublishedCacheKey); err != nil {
		h.logger.Warn("blog cache invalidation failed", "error", err)
	}
}
