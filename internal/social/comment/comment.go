// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements threaded discussion on posts.
package comment

import "time"

// Comment represents a single remark attached to a post.
type Comment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	FieldContent   = "content"
	FieldPostID    = "postID"
	FieldCommentID = "commentID"
)
