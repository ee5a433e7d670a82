// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Recorder appends actions to the user-action trail.
type Recorder interface {
	Record(context context.Context, action audit.Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any)
}

// Service implements follower-graph use cases.
type Service struct {
	repository Repository
	trail      Recorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, trail Recorder) *Service {
	return &Service{repository: repository, trail: trail}
}

/*
Follow creates an edge from the acting user to the target user.

Description: Self-follows are rejected as validation failures; duplicate
edges are conflicts.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - targetUserID: int

Returns:
  - *Follow: Created edge
  - error: Validation, Conflict, NotFound, or storage errors
*/
func (service *Service) Follow(context context.Context, claims *sec.AuthClaims, targetUserID int) (*Follow, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if targetUserID == claims.UserID {
		return nil, apperr.ValidationError("You cannot follow yourself")
	}

	follow := &Follow{
		FollowerID:  claims.UserID,
		FollowingID: targetUserID,
	}

	if err := service.repository.Create(context, follow); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionCreate, claims, authz.EntityFollow, &follow.ID, follow)

	return follow, nil
}

/*
Unfollow removes the edge from the acting user to the target user.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - targetUserID: int

Returns:
  - error: NotFound (no such edge) or storage errors
*/
func (service *Service) Unfollow(context context.Context, claims *sec.AuthClaims, targetUserID int) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if err := service.repository.DeleteByPair(context, claims.UserID, targetUserID); err != nil {
		return err
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityFollow, nil, map[string]int{
		"follower_id":  claims.UserID,
		"following_id": targetUserID,
	})

	return nil
}

// Followers returns a page of users who follow userID. Public read.
func (service *Service) Followers(context context.Context, userID int, params pagination.Params) ([]Edge, int, error) {
	return service.repository.Followers(context, userID, params)
}

// Following returns a page of users whom userID follows. Public read.
func (service *Service) Following(context context.Context, userID int, params pagination.Params) ([]Edge, int, error) {
	return service.repository.Following(context, userID, params)
}
