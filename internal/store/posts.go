// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// BlogPost is a row in the blog_posts table. Slug is null for posts created
// before slug support; BackfillBlogSlugs derives slugs for those rows.
type BlogPost struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Author    string
	ReadTime  string
	ImageURL  sql.NullString
	Slug      sql.NullString
	Published bool
	CreatedAt time.Time
}

const blogPostColumns = `id, title, excerpt, content, category, author, read_time, image_url, slug, published, created_at`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Category, &p.Author,
		&p.ReadTime, &p.ImageURL, &p.Slug, &p.Published, &p.CreatedAt)
	return p, err
}

func (q *Queries) listBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListBlogPosts returns all posts ordered by creation time, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

// ListPublishedBlogPosts returns published posts ordered by creation time,
// newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC`)
}

// ListBlogPostsWithoutSlug returns posts whose slug has not been derived yet.
func (q *Queries) ListBlogPostsWithoutSlug(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug IS NULL ORDER BY created_at ASC`)
}

// GetBlogPostByID returns the post with the given id, or sql.ErrNoRows.
func (q *Queries) GetBlogPostByID(ctx context.Context, id string) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// GetBlogPostBySlug returns the post with the given slug, or sql.ErrNoRows.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = ?`, slug)
	return scanBlogPost(row)
}

// CreateBlogPostParams holds the fields for CreateBlogPost.
type CreateBlogPostParams struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Author    string
	ReadTime  string
	ImageURL  sql.NullString
	Slug      sql.NullString
	Published bool
	CreatedAt time.Time
}

// CreateBlogPost inserts a new post and returns the stored row.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO blog_posts (id, title, excerpt, content, category, author, read_time, image_url, slug, published, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Excerpt, arg.Content, arg.Category, arg.Author,
		arg.ReadTime, arg.ImageURL, arg.Slug, arg.Published, arg.CreatedAt,
	)
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPostByID(ctx, arg.ID)
}

// UpdateBlogPostParams holds the full field set for UpdateBlogPost. Handlers
// merge partial updates into the existing row before calling it.
type UpdateBlogPostParams struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Author    string
	ReadTime  string
	ImageURL  sql.NullString
	Slug      sql.NullString
	Published bool
}

// UpdateBlogPost replaces the mutable fields of a post. Returns sql.ErrNoRows
// if the post does not exist.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE blog_posts
		 SET title = ?, excerpt = ?, content = ?, category = ?, author = ?, read_time = ?, image_url = ?, slug = ?, published = ?
		 WHERE id = ?`,
		arg.Title, arg.Excerpt, arg.Content, arg.Category, arg.Author,
		arg.ReadTime, arg.ImageURL, arg.Slug, arg.Published, arg.ID,
	)
	if err != nil {
		return BlogPost{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return BlogPost{}, err
	} else if n == 0 {
		return BlogPost{}, sql.ErrNoRows
	}
	return q.GetBlogPostByID(ctx, arg.ID)
}

// DeleteBlogPost removes a post and reports whether a row existed.
func (q *Queries) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetBlogPostSlug assigns a slug to a post.
func (q *Queries) SetBlogPostSlug(ctx context.Context, id, slug string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE blog_posts SET slug = ? WHERE id = ?`, slug, id)
	return err
}

// SlugExists returns 1 if any post uses the given slug.
func (q *Queries) SlugExists(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// SlugExistsExcludingParams holds the fields for SlugExistsExcluding.
type SlugExistsExcludingParams struct {
	Slug string
	ID   string
}

// SlugExistsExcluding returns 1 if a post other than the given id uses the slug.
func (q *Queries) SlugExistsExcluding(ctx context.Context, arg SlugExistsExcludingParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?`, arg.Slug, arg.ID).Scan(&count)
	return count, err
}
