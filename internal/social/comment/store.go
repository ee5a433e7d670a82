// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {
	// Create persists a new comment and assigns its ID. Inserting against a
	// missing post returns apperr.NotFound.
	Create(context context.Context, comment *Comment) error

	// FindByID returns the comment with the given ID.
	FindByID(context context.Context, id int) (*Comment, error)

	// UpdateContent replaces the comment body.
	UpdateContent(context context.Context, id int, content string) error

	// Delete permanently removes a comment.
	Delete(context context.Context, id int) error

	// ListByPost returns a page of a post's comments, oldest first.
	ListByPost(context context.Context, postID int, params pagination.Params) ([]Comment, int, error)
}
