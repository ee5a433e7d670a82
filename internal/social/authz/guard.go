// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authz implements the shared ownership guard for social content.

Every mutating operation on user-generated content (posts, comments, likes,
follows) passes through the same predicate: the actor must be an admin or the
owner of the row. Centralizing the check keeps the per-domain services free
of duplicated permission logic.
*/
package authz

import (
	"context"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
)

// Entity type identifiers shared by the guard and the audit trail.
const (
	EntityPost     = "post"
	EntityComment  = "comment"
	EntityLike     = "like"
	EntityFollow   = "follow"
	EntityCategory = "category"
	EntityUser     = "user"
)

// OwnerStore resolves the owning user of a content row.
type OwnerStore interface {

	/*
		OwnerID returns the user ID that owns the entity row.

		Parameters:
		  - context: context.Context
		  - entityType: string (one of the Entity* constants)
		  - id: int

		Returns:
		  - int: Owning user ID
		  - error: apperr.NotFound if the row does not exist
	*/
	OwnerID(context context.Context, entityType string, id int) (int, error)
}

// Guard enforces the owner-or-admin predicate against stored rows.
type Guard struct {
	owners OwnerStore
}

// NewGuard constructs a Guard around an owner lookup store.
func NewGuard(owners OwnerStore) *Guard {
	return &Guard{owners: owners}
}

/*
Authorize checks that the actor may modify the identified entity.

Description: Resolves the row's owner and applies the owner-or-admin
predicate. Existence is checked first so a missing row surfaces as 404
rather than 403, regardless of who asks.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil means anonymous)
  - entityType: string
  - id: int

Returns:
  - error: apperr.Unauthorized, apperr.NotFound, or apperr.Forbidden
*/
func (guard *Guard) Authorize(context context.Context, claims *sec.AuthClaims, entityType string, id int) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	ownerID, err := guard.owners.OwnerID(context, entityType, id)
	if err != nil {
		return err
	}

	if !CanModify(claims, ownerID) {
		return apperr.Forbidden("You do not have permission to modify this resource")
	}

	return nil
}

// CanModify reports whether the actor may modify content owned by ownerID.
// Admins may modify anything; everyone else only their own rows.
func CanModify(claims *sec.AuthClaims, ownerID int) bool {
	if claims == nil {
		return false
	}
	return claims.RoleID.IsAdmin() || claims.UserID == ownerID
}
