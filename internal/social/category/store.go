// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the data access contract for categories and their
// post assignments.
type Repository interface {
	// Create persists a new category. A duplicate slug returns apperr.Conflict.
	Create(context context.Context, category *Category) error

	// FindByID retrieves a category by primary key.
	FindByID(context context.Context, id int) (*Category, error)

	// Update persists changes to name, slug, and description.
	Update(context context.Context, category *Category) error

	// Delete removes a category. Assignments go with it via ON DELETE CASCADE.
	Delete(context context.Context, id int) error

	// List returns a page of categories ordered by name.
	List(context context.Context, params pagination.Params) ([]Category, int, error)

	// AttachPost assigns a post to a category. A duplicate pair returns
	// apperr.Conflict; a missing post or category returns apperr.NotFound.
	AttachPost(context context.Context, categoryID, postID int) error

	// DetachPost removes an assignment. Returns apperr.NotFound if absent.
	DetachPost(context context.Context, categoryID, postID int) error

	// PostsByCategory returns a page of posts assigned to the category,
	// newest first. Archived posts are excluded.
	PostsByCategory(context context.Context, categoryID int, params pagination.Params) ([]post.Post, int, error)
}
