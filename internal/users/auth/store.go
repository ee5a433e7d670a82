// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (unique violations map to Conflict)
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByResetToken returns the account holding the given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByResetToken(context context.Context, token string) (*User, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int, newHash string) error

	/*
		MarkVerified flips the account to isverified = true by email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, email string) error

	/*
		SetResetToken stores a password reset token and its expiry on the user row.

		Parameters:
		  - context: context.Context
		  - userID: int
		  - token: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetResetToken(context context.Context, userID int, token string, expiresAt time.Time) error

	/*
		ClearResetToken removes any pending reset token from the user row.

		Parameters:
		  - context: context.Context
		  - userID: int

		Returns:
		  - error: Persistence failures
	*/
	ClearResetToken(context context.Context, userID int) error
}

// # Role Data Access

// RoleRepository defines the data access contract for roles.
type RoleRepository interface {

	/*
		FindByID returns the role with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Role: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int) (*Role, error)

	/*
		FindByName returns the role with the given name.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - *Role: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByName(context context.Context, name string) (*Role, error)

	/*
		List returns every role ordered by ID.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Role: All roles
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]Role, error)
}
