// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package like implements reactions on posts and comments.
//
// A like targets exactly one of the two reference kinds. Uniqueness per
// (user, target) is enforced by the storage layer, so double-liking is a
// conflict rather than a silent no-op.
package like

import "time"

// Reference kinds a like can target.
const (
	RefPost    = "post"
	RefComment = "comment"
)

// Like represents a single reaction. Exactly one of PostID/CommentID is set.
type Like struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PostID    *int      `json:"post_id,omitempty"`
	CommentID *int      `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	FieldRef    = "ref"
	FieldRefID  = "refID"
	FieldLikeID = "likeID"
)
