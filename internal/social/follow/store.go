// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the data access contract for the follower graph.
type Repository interface {
	// Create persists a new edge. A duplicate pair returns apperr.Conflict;
	// a missing counterpart user returns apperr.NotFound.
	Create(context context.Context, follow *Follow) error

	// DeleteByPair removes the edge from followerID to followingID.
	// Returns apperr.NotFound if no such edge exists.
	DeleteByPair(context context.Context, followerID, followingID int) error

	// Followers returns a page of users who follow userID, newest first.
	Followers(context context.Context, userID int, params pagination.Params) ([]Edge, int, error)

	// Following returns a page of users whom userID follows, newest first.
	Following(context context.Context, userID int, params pagination.Params) ([]Edge, int, error)
}
