// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category implements content categories and their post assignments.

Categories are a flat, admin-curated taxonomy. Each category carries a
URL-safe slug derived from its name. Posts are assigned to categories
through a join table; an assignment is managed by the post's owner (or an
admin), while the taxonomy itself is admin-only.
*/
package category

import "time"

// Category is a single entry of the content taxonomy.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategoryID  = "categoryID"
	FieldPostID      = "postID"
)
