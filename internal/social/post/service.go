// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/ctxutil"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
)

// # Contracts & Types

// ObjectStore defines the contract for hosting post images externally.
type ObjectStore interface {
	// Upload stores raw image bytes and returns the public URL.
	Upload(context context.Context, image []byte) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	Delete(context context.Context, imageURL string) error
}

// Authorizer enforces the owner-or-admin predicate on stored rows.
type Authorizer interface {
	Authorize(context context.Context, claims *sec.AuthClaims, entityType string, id int) error
}

// Recorder appends actions to the user-action trail.
type Recorder interface {
	Record(context context.Context, action audit.Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any)
}

// Service implements post use cases.
type Service struct {
	repository Repository
	objects    ObjectStore
	guard      Authorizer
	trail      Recorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, objects ObjectStore, guard Authorizer, trail Recorder) *Service {
	return &Service{
		repository: repository,
		objects:    objects,
		guard:      guard,
		trail:      trail,
	}
}

// # Creation

// CreateInput holds the data required to publish a new post.
type CreateInput struct {
	Title   string
	Content string

	// Image holds raw image bytes to upload; nil publishes without an image.
	Image []byte
}

/*
Create publishes a new post owned by the acting user.

Description: Optionally uploads the attached image to the object store, then
persists the post and records the action in the trail.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - input: CreateInput

Returns:
  - *Post: Created entity
  - error: Upstream (image upload failure) or storage errors
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, input CreateInput) (*Post, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	post := &Post{
		UserID:  claims.UserID,
		Title:   input.Title,
		Content: input.Content,
	}

	if len(input.Image) > 0 {
		imageURL, err := service.objects.Upload(context, input.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = imageURL
	}

	if err := service.repository.Create(context, post); err != nil {
		// The uploaded image is now orphaned; reclaim it best-effort.
		if post.ImageURL != "" {
			_ = service.objects.Delete(context, post.ImageURL)
		}
		return nil, err
	}

	service.trail.Record(context, audit.ActionCreate, claims, authz.EntityPost, &post.ID, post)

	return post, nil
}

// # Retrieval

/*
Get returns a single post by ID.

Description: Public read. The retrieval is recorded in the trail with a nil
actor when the caller is anonymous.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous readers)
  - id: int

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, claims *sec.AuthClaims, id int) (*Post, error) {
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionRetrieve, claims, authz.EntityPost, &post.ID, nil)

	return post, nil
}

// ListInput narrows and orders the post feed.
type ListInput struct {
	UserID      *int
	Archived    *bool
	CategoryIDs []int
	Sort        string
	Descending  bool
}

/*
List returns a page of posts under the role-aware visibility policy.

Description: An explicit archived filter always wins. Otherwise admins see
every author's non-archived posts, while members default to their own posts
across both archive states. Members browsing another author never see that
author's archived posts.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - input: ListInput
  - params: pagination.Params

Returns:
  - []Post: The page of posts
  - int: Total matching posts
  - error: Unauthorized or retrieval failures
*/
func (service *Service) List(context context.Context, claims *sec.AuthClaims, input ListInput, params pagination.Params) ([]Post, int, error) {
	if claims == nil {
		return nil, 0, apperr.Unauthorized("Authentication required")
	}

	filter := ListFilter{
		UserID:      input.UserID,
		Archived:    input.Archived,
		CategoryIDs: input.CategoryIDs,
		Sort:        input.Sort,
		Descending:  input.Descending,
	}

	if claims.RoleID.IsAdmin() {
		if filter.Archived == nil {
			filter.Archived = pointer.To(false)
		}
	} else {
		switch {
		case filter.UserID == nil:
			// Members default to their own feed, both archive states.
			own := claims.UserID
			filter.UserID = &own
		case *filter.UserID != claims.UserID:
			// Archived posts of other authors stay hidden regardless of
			// the requested filter.
			filter.Archived = pointer.To(false)
		}
	}

	return service.repository.List(context, filter, params)
}

// # Mutation

// UpdateInput holds the optional field changes for a post.
type UpdateInput struct {
	Title   *string
	Content *string

	// Image replaces the hosted image when non-nil. The previous image is
	// removed from the object store.
	Image []byte
}

/*
Update modifies an existing post.

Description: Guarded by the owner-or-admin predicate. Replacing the image
deletes the previous upload before hosting the new one.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int
  - input: UpdateInput

Returns:
  - *Post: Updated entity
  - error: NotFound, Forbidden, Upstream, or storage errors
*/
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, id int, input UpdateInput) (*Post, error) {
	if err := service.guard.Authorize(context, claims, authz.EntityPost, id); err != nil {
		return nil, err
	}

	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if len(input.Image) > 0 {
		previousURL := post.ImageURL

		imageURL, err := service.objects.Upload(context, input.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = imageURL

		if previousURL != "" {
			if err := service.objects.Delete(context, previousURL); err != nil {
				// The new image is already live; a stale leftover on the
				// object store is not worth failing the update over.
				ctxutil.GetLogger(context).WarnContext(context, "post_previous_image_delete_failed",
					"post_id", id, "error", err.Error())
			}
		}
	}

	if err := service.repository.Update(context, post); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityPost, &post.ID, post)

	return post, nil
}

/*
Archive hides a post from default feeds without deleting it.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Archive(context context.Context, claims *sec.AuthClaims, id int) error {
	return service.setArchived(context, claims, id, true)
}

/*
Unarchive returns a previously archived post to default feeds.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Unarchive(context context.Context, claims *sec.AuthClaims, id int) error {
	return service.setArchived(context, claims, id, false)
}

func (service *Service) setArchived(context context.Context, claims *sec.AuthClaims, id int, archived bool) error {
	if err := service.guard.Authorize(context, claims, authz.EntityPost, id); err != nil {
		return err
	}

	if err := service.repository.SetArchived(context, id, archived); err != nil {
		return err
	}

	action := audit.ActionArchive
	if !archived {
		action = audit.ActionUnarchive
	}
	service.trail.Record(context, action, claims, authz.EntityPost, &id, nil)

	return nil
}

/*
Delete permanently removes a post and its hosted image.

Description: Guarded by the owner-or-admin predicate. The image removal is
best-effort; the database row is the source of truth.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, id int) error {
	if err := service.guard.Authorize(context, claims, authz.EntityPost, id); err != nil {
		return err
	}

	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	if post.ImageURL != "" {
		if err := service.objects.Delete(context, post.ImageURL); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "post_image_delete_failed",
				"post_id", id, "error", err.Error())
		}
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityPost, &id, post)

	return nil
}

