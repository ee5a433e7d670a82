// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/ctxutil"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/internal/users/auth"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
)

// # Contracts & Types

// ObjectStore defines the contract for hosting avatar images externally.
type ObjectStore interface {
	// Upload stores raw image bytes and returns the public URL.
	Upload(context context.Context, image []byte) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	Delete(context context.Context, imageURL string) error
}

// PostLister reads a user's posts for the profile view.
type PostLister interface {
	List(context context.Context, filter post.ListFilter, params pagination.Params) ([]post.Post, int, error)
}

// RoleFinder resolves roles for assignment.
type RoleFinder interface {
	FindByID(context context.Context, id int) (*auth.Role, error)
}

// Recorder appends actions to the user-action trail.
type Recorder interface {
	Record(context context.Context, action audit.Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any)
}

// Service implements account use cases.
type Service struct {
	repository Repository
	posts      PostLister
	roles      RoleFinder
	objects    ObjectStore
	trail      Recorder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, posts PostLister, roles RoleFinder, objects ObjectStore, trail Recorder) *Service {
	return &Service{
		repository: repository,
		posts:      posts,
		roles:      roles,
		objects:    objects,
		trail:      trail,
	}
}

// # Profile Reads

/*
GetProfile returns a user's public profile: identity plus their latest
non-archived posts.

Description: Public read. The retrieval is recorded in the trail with a nil
actor when the caller is anonymous.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous readers)
  - userID: int
  - params: pagination.Params (applies to the post feed)

Returns:
  - *Profile: User and posts
  - int: Total posts by the user
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetProfile(context context.Context, claims *sec.AuthClaims, userID int, params pagination.Params) (*Profile, int, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, 0, err
	}

	filter := post.ListFilter{
		UserID:     &userID,
		Archived:   pointer.To(false),
		Descending: true,
	}
	posts, total, err := service.posts.List(context, filter, params)
	if err != nil {
		return nil, 0, err
	}

	service.trail.Record(context, audit.ActionRetrieve, claims, authz.EntityUser, &userID, nil)

	return &Profile{User: user, Posts: posts}, total, nil
}

/*
Search returns a page of accounts matching the term on name or email.

Parameters:
  - context: context.Context
  - term: string (empty matches everyone)
  - params: pagination.Params

Returns:
  - []auth.User: The page of accounts
  - int: Total matching accounts
  - error: Retrieval failures
*/
func (service *Service) Search(context context.Context, term string, params pagination.Params) ([]auth.User, int, error) {
	return service.repository.Search(context, term, params)
}

// # Profile Mutation

// UpdateInput holds the optional profile field changes.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string

	// Avatar replaces the hosted avatar image when non-nil. The previous
	// image is removed from the object store.
	Avatar []byte
}

/*
UpdateProfile applies a partial set of changes to an account.

Description: Guarded by the owner-or-admin predicate. A new password is
hashed before storage; a new avatar replaces the previous upload.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - userID: int
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, Forbidden, Validation, Conflict, Upstream, or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, claims *sec.AuthClaims, userID int, input UpdateInput) (*auth.User, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanModify(claims, user.ID) {
		return nil, apperr.Forbidden("You do not have permission to modify this account")
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 100)
	}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}
	if input.Password != nil {
		validator.MinLen(FieldPassword, *input.Password, 8)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("could not process password: %w", err))
		}
		user.PasswordHash = hash
	}

	if len(input.Avatar) > 0 {
		previousURL := user.AvatarURL

		avatarURL, err := service.objects.Upload(context, input.Avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = avatarURL

		if previousURL != "" {
			if err := service.objects.Delete(context, previousURL); err != nil {
				ctxutil.GetLogger(context).WarnContext(context, "account_previous_avatar_delete_failed",
					"user_id", userID, "error", err.Error())
			}
		}
	}

	if err := service.repository.Update(context, user); err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityUser, &user.ID, user)

	return user, nil
}

/*
AssignRole changes a user's role. Admin only (enforced at the router); the
target role must exist.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - userID: int
  - roleID: int

Returns:
  - *auth.User: The account with its new role
  - error: NotFound (user or role) or storage errors
*/
func (service *Service) AssignRole(context context.Context, claims *sec.AuthClaims, userID, roleID int) (*auth.User, error) {
	role, err := service.roles.FindByID(context, roleID)
	if err != nil {
		return nil, err
	}

	if err := service.repository.UpdateRole(context, userID, role.ID); err != nil {
		return nil, err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	service.trail.Record(context, audit.ActionUpdate, claims, authz.EntityUser, &userID, map[string]int{
		"role_id": role.ID,
	})

	return user, nil
}

/*
Delete permanently removes an account and its hosted avatar.

Description: Guarded by the owner-or-admin predicate. The user's posts,
comments, likes, and follower edges go with the row. Avatar removal is
best-effort; the database row is the source of truth.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - userID: int

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, userID int) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !authz.CanModify(claims, user.ID) {
		return apperr.Forbidden("You do not have permission to modify this account")
	}

	if err := service.repository.Delete(context, userID); err != nil {
		return err
	}

	if user.AvatarURL != "" {
		if err := service.objects.Delete(context, user.AvatarURL); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "account_avatar_delete_failed",
				"user_id", userID, "error", err.Error())
		}
	}

	service.trail.Record(context, audit.ActionDelete, claims, authz.EntityUser, &userID, user)

	return nil
}
