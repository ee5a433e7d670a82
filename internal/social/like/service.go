// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Authorizer enforces the owner-or-admin predicate on stored rows.
type Authorizer interface {
	Authorize(context context.Context, claims *sec.AuthClaims, entityType string, id int) error
}

// Recorder appends actions to the user-action trail.
type Recorder interface {
	Record(context context.Context, action audit.Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any)
}

// Service implements like use cases.
type Service struct {
	repository Repository
	guard      Authorizer
	trail      Recorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, guard Authorizer, trail Recorder) *Service {
	return &Service{repository: repository, guard: guard, trail: trail}
}

/*
Create records a like on a post or comment.

Description: The ref kind selects the target column. Liking the same target
twice is a Conflict; liking a missing target is a NotFound.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - ref: string (RefPost or RefComment)
  - targetID: int

Returns:
  - *Like: Created entity
  - error: Conflict, NotFound, Validation, or storage errors
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, ref string, targetID int) (*Like, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	like := &Like{UserID: claims.UserID}
	switch ref {
	case RefPost:
		like.PostID = &targetID
	case RefComment:
		like.CommentID = &targetID
	default:
		return nil, apperr.ValidationError("Unknown reference kind", apperr.FieldError{
			Field:   FieldRef,
			Message: "Must be 'post' or 'comment'",
		})
	}

	if err := service.repository.Create(context, like); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionCreate, claims, authz.EntityLike, &like.ID, like)

	return like, nil
}

// ListByTarget returns a page of likes on a post or comment. Public read.
func (service *Service) ListByTarget(context context.Context, ref string, targetID int, params pagination.Params) ([]Like, int, error) {
	if ref != RefPost && ref != RefComment {
		return nil, 0, apperr.ValidationError("Unknown reference kind", apperr.FieldError{
			Field:   FieldRef,
			Message: "Must be 'post' or 'comment'",
		})
	}
	return service.repository.ListByTarget(context, ref, targetID, params)
}

/*
Delete removes a like.

Description: Guarded by the owner-or-admin predicate.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, id int) error {
	if err := service.guard.Authorize(context, claims, authz.EntityLike, id); err != nil {
		return err
	}

	like, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityLike, &id, like)

	return nil
}
