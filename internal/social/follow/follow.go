// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package follow implements the follower graph between users.
//
// Edges are directed: a Follow from A to B means A sees B's activity.
// Self-follows are rejected outright and duplicate edges are conflicts,
// both backed by constraints in storage.
package follow

import "time"

// Follow represents a directed edge in the follower graph.
type Follow struct {
	ID          int       `json:"id"`
	FollowerID  int       `json:"follower_id"`
	FollowingID int       `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Edge is a follower-graph entry joined with the counterpart's profile,
// as returned by the listing endpoints.
type Edge struct {
	UserID     int       `json:"user_id"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	FollowedAt time.Time `json:"followed_at"`
}

const (
	FieldUserID = "userID"
)
