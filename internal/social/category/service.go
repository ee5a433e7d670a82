// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/slug"
)

// Authorizer decides whether an actor may modify a stored entity.
type Authorizer interface {
	Authorize(context context.Context, claims *sec.AuthClaims, entityType string, id int) error
}

// Recorder appends actions to the user-action trail.
type Recorder interface {
	Record(context context.Context, action audit.Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any)
}

// Service implements category use cases.
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
Create adds a new category to the taxonomy. Admin only (enforced at the
router); the slug is derived from the name.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - name: string
  - description: string

Returns:
  - *Category: Created category
  - error: Validation, Conflict, or storage errors
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, name, description string) (*Category, error) {
	validator := &validate.Validator{}
	if err := validator.
		Required(FieldName, name).
		MaxLen(FieldName, name, 100).
		MaxLen(FieldDescription, description, 500).
		Custom(FieldName, slug.From(name) == "", "Must contain at least one letter or digit").
		Err(); err != nil {
		return nil, err
	}

	category := &Category{
		Name:        name,
		Slug:        slug.From(name),
		Description: description,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionCreate, claims, authz.EntityCategory, &category.ID, category)

	return category, nil
}

// List returns a page of categories ordered by name. Public read.
func (service *Service) List(context context.Context, params pagination.Params) ([]Category, int, error) {
	return service.repository.List(context, params)
}

/*
Update changes a category's name and description. Renaming regenerates
the slug. Admin only (enforced at the router).

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int
  - name: *string
  - description: *string

Returns:
  - *Category: Updated category
  - error: NotFound, Validation, Conflict, or storage errors
*/
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, id int, name, description *string) (*Category, error) {
	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		validator := &validate.Validator{}
		if err := validator.
			Required(FieldName, *name).
			MaxLen(FieldName, *name, 100).
			Custom(FieldName, slug.From(*name) == "", "Must contain at least one letter or digit").
			Err(); err != nil {
			return nil, err
		}
		category.Name = *name
		category.Slug = slug.From(*name)
	}
	if description != nil {
		category.Description = *description
	}

	if err := service.repository.Update(context, category); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityCategory, &category.ID, category)

	return category, nil
}

/*
Delete removes a category and its assignments. Admin only (enforced at
the router).

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, id int) error {
	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityCategory, &id, category)

	return nil
}

/*
AttachPost assigns a post to a category.

Description: The assignment is owned by the post, so the post's owner (or
an admin) manages it, not the category's curator.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - categoryID: int
  - postID: int

Returns:
  - error: Unauthorized, Forbidden, NotFound, Conflict, or storage errors
*/
func (service *Service) AttachPost(context context.Context, claims *sec.AuthClaims, categoryID, postID int) error {
	if err := service.guard.Authorize(context, claims, authz.EntityPost, postID); err != nil {
		return err
	}

	if err := service.repository.AttachPost(context, categoryID, postID); err != nil {
		return err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityCategory, &categoryID, map[string]int{
		"post_id": postID,
	})

	return nil
}

/*
DetachPost removes a post's assignment to a category. Same ownership rule
as [Service.AttachPost].

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - categoryID: int
  - postID: int

Returns:
  - error: Unauthorized, Forbidden, NotFound, or storage errors
*/
func (service *Service) DetachPost(context context.Context, claims *sec.AuthClaims, categoryID, postID int) error {
	if err := service.guard.Authorize(context, claims, authz.EntityPost, postID); err != nil {
		return err
	}

	return service.repository.DetachPost(context, categoryID, postID)
}

// PostsByCategory returns the non-archived posts assigned to a category,
// newest first. Public read.
func (service *Service) PostsByCategory(context context.Context, categoryID int, params pagination.Params) ([]post.Post, int, error) {
	if _, err := service.repository.FindByID(context, categoryID); err != nil {
		return nil, 0, err
	}
	return service.repository.PostsByCategory(context, categoryID, params)
}
