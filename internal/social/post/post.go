// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post implements the post domain of the Ripple platform.

A post is the primary unit of user-generated content: a titled body of text
with an optional image hosted on an external object store. Posts can be
archived (hidden from default feeds without deletion) and are the anchor for
comments, likes, and category assignments.

# Architecture

  - Service: Business rules (ownership, archive policy, image lifecycle).
  - Repository: pgx-backed persistence.
  - Handler: REST endpoints under /api/v1/posts.
*/
package post

import "time"

// Post represents a single piece of published content.
type Post struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Sortable columns for post listings.
const (
	SortTitle     = "title"
	SortCreatedAt = "created_at"
)

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldImage   = "image"
	FieldSort    = "sort"
	FieldOrder   = "order"
	FieldPostID  = "postID"
)
