// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management and administration.

It exposes public profiles (identity plus recent posts), user search,
self-service profile updates with avatar hosting, and the admin-only
operations of role assignment and account removal.

# Architecture

  - Domain: This package depends on the auth package for the User entity
    and on the post package for the profile's content feed.
  - Security: Profile mutations follow the owner-or-admin predicate;
    role assignment is admin-only.
*/
package account

import (
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/internal/users/auth"
)

// Profile is the public view of a user: identity plus their latest posts.
type Profile struct {
	User  *auth.User  `json:"user"`
	Posts []post.Post `json:"posts"`
}

// # Field Identifiers

const (
	FieldUserID   = "userID"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAvatar   = "avatar"
	FieldRoleID   = "role_id"
	FieldSearch   = "search"
)
