// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/instatrainme/site-api/internal/util"
)

// BackfillBlogSlugs derives slugs for posts that predate slug support and
// returns the number of rows updated. Only null-slug rows are touched, so
// re-running it is safe. Distinct titles that collapse to the same slug get
// a numeric suffix to satisfy the unique constraint.
func (q *Queries) BackfillBlogSlugs(ctx context.Context) (int64, error) {
	posts, err := q.ListBlogPostsWithoutSlug(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing posts without slug: %w", err)
	}

	var updated int64
	for _, p := range posts {
		base := util.Slugify(p.Title)
		if base == "" {
			base = p.ID
		}

		slug := base
		for suffix := 2; ; suffix++ {
			count, err := q.SlugExistsExcluding(ctx, SlugExistsExcludingParams{Slug: slug, ID: p.ID})
			if err != nil {
				return updated, fmt.Errorf("checking slug %q: %w", slug, err)
			}
			if count == 0 {
				break
			}
			slug = fmt.Sprintf("%s-%d", base, suffix)
		}

		if err := q.SetBlogPostSlug(ctx, p.ID, slug); err != nil {
			return updated, fmt.Errorf("setting slug for post %s: %w", p.ID, err)
		}
		updated++
	}

	return updated, nil
}
