// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/ripple/pkg/pagination"
)

// ListFilter narrows and orders post listings.
type ListFilter struct {
	// UserID restricts the listing to a single author when non-nil.
	UserID *int

	// Archived filters on the archive flag when non-nil; nil means both.
	Archived *bool

	// CategoryIDs keeps only posts assigned to at least one of the given
	// categories when non-empty.
	CategoryIDs []int

	// Sort is one of the Sort* constants; empty defaults to SortCreatedAt.
	Sort string

	// Descending orders newest/highest first when true.
	Descending bool
}

// Repository defines the data access contract for posts.
type Repository interface {

	/*
		Create persists a new post and assigns its ID.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID returns the post with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int) (*Post, error)

	/*
		Update persists changes to the post's mutable fields.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		SetArchived flips the archive flag on a post.

		Parameters:
		  - context: context.Context
		  - id: int
		  - archived: bool

		Returns:
		  - error: Persistence failures
	*/
	SetArchived(context context.Context, id int, archived bool) error

	/*
		Delete permanently removes a post and its dependent rows.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id int) error

	/*
		List returns a filtered, ordered, paginated page of posts.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - params: pagination.Params

		Returns:
		  - []Post: The page of posts
		  - int: Total matching posts
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]Post, int, error)
}
