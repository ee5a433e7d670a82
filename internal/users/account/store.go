// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/ripple/internal/users/auth"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the data access contract for account administration.
//
// It complements auth.UserRepository: auth owns the credential lifecycle,
// this contract owns profile reads, search, and administration.
type Repository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int) (*auth.User, error)

	/*
		Search returns a page of accounts whose name or email matches the
		search term, ordered by name. An empty term matches everyone.

		Parameters:
		  - context: context.Context
		  - term: string
		  - params: pagination.Params

		Returns:
		  - []auth.User: The page of accounts
		  - int: Total matching accounts
		  - error: Retrieval failures
	*/
	Search(context context.Context, term string, params pagination.Params) ([]auth.User, int, error)

	/*
		Update persists changes to the profile fields: name, email,
		password hash, and avatar URL.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Persistence failures (unique violations map to Conflict)
	*/
	Update(context context.Context, user *auth.User) error

	/*
		UpdateRole reassigns the account's role.

		Parameters:
		  - context: context.Context
		  - userID: int
		  - roleID: int

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateRole(context context.Context, userID, roleID int) error

	/*
		Delete permanently removes an account. Dependent posts, comments,
		likes, and follower edges are removed by ON DELETE CASCADE.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id int) error
}
