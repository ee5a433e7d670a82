// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// Service implements comment use cases.
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
Create attaches a new comment to a post.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - postID: int
  - content: string

Returns:
  - *Comment: Created entity
  - error: NotFound (unknown post) or storage errors
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, postID int, content string) (*Comment, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	comment := &Comment{
		UserID:  claims.UserID,
		PostID:  postID,
		Content: content,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionCreate, claims, authz.EntityComment, &comment.ID, comment)

	return comment, nil
}

// ListByPost returns a page of a post's comments, oldest first. Public read.
func (service *Service) ListByPost(context context.Context, postID int, params pagination.Params) ([]Comment, int, error) {
	return service.repository.ListByPost(context, postID, params)
}

/*
Update replaces the body of an existing comment.

Description: Guarded by the owner-or-admin predicate.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int
  - content: string

Returns:
  - *Comment: Updated entity
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, id int, content string) (*Comment, error) {
	if err := service.guard.Authorize(context, claims, authz.EntityComment, id); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateContent(context, id, content); err != nil {
		return nil, err
	}

	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityComment, &comment.ID, comment)

	return comment, nil
}

/*
Delete permanently removes a comment.

Description: Guarded by the owner-or-admin predicate.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, id int) error {
	if err := service.guard.Authorize(context, claims, authz.EntityComment, id); err != nil {
		return err
	}

	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityComment, &id, comment)

	return nil
}
