// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Inserts the account and hydrates the serial ID and timestamps
back into the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (email, passwordhash, name, avatarurl, roleid, isverified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.AvatarURL,
		user.RoleID,
		user.IsVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int) (*User, error) {
	const query = userSelectColumns + ` WHERE id = $1`
	return repository.scanOne(context, query, id)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = userSelectColumns + ` WHERE email = $1`
	return repository.scanOne(context, query, email)
}

/*
FindByResetToken retrieves the user holding the given password reset token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByResetToken(context context.Context, token string) (*User, error) {
	const query = userSelectColumns + ` WHERE resettoken = $1`
	return repository.scanOne(context, query, token)
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: int
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	return dberr.Wrap(err, "postgres_user_repo_update_password_failed")
}

/*
MarkVerified flips the account with the given email to isverified = true.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: apperr.NotFound if no account matches, or execution errors
*/
func (repository *PostgresUserRepository) MarkVerified(context context.Context, email string) error {
	const query = `
		UPDATE users.account
		SET isverified = TRUE, updatedat = $2
		WHERE email = $1`

	tag, err := repository.pool.Exec(context, query, email, time.Now())
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_mark_verified_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
SetResetToken stores a password reset token and its expiry on the user row.

Parameters:
  - context: context.Context
  - userID: int
  - token: string
  - expiresAt: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetResetToken(context context.Context, userID int, token string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET resettoken = $2, resettokenexpires = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, token, expiresAt, time.Now())
	return dberr.Wrap(err, "postgres_user_repo_set_reset_token_failed")
}

/*
ClearResetToken removes any pending reset token from the user row.

Parameters:
  - context: context.Context
  - userID: int

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ClearResetToken(context context.Context, userID int) error {
	const query = `
		UPDATE users.account
		SET resettoken = NULL, resettokenexpires = NULL, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	return dberr.Wrap(err, "postgres_user_repo_clear_reset_token_failed")
}

const userSelectColumns = `
	SELECT id, email, passwordhash, name, avatarurl, roleid, isverified,
	       resettoken, resettokenexpires, createdat, updatedat
	FROM users.account`

// scanOne runs a single-row user query and maps pgx.ErrNoRows to NotFound.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.AvatarURL,
		&user.RoleID,
		&user.IsVerified,
		&user.ResetToken,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "postgres_user_repo_find_failed")
	}

	return user, nil
}

// # Role Repository

// PostgresRoleRepository implements the RoleRepository interface.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

/*
FindByID retrieves a role by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Role: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRoleRepository) FindByID(context context.Context, id int) (*Role, error) {
	const query = `SELECT id, name, description FROM users.role WHERE id = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, id).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, dberr.Wrap(err, "postgres_role_repo_find_by_id_failed")
	}
	return role, nil
}

/*
FindByName retrieves a role by its unique name.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *Role: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRoleRepository) FindByName(context context.Context, name string) (*Role, error) {
	const query = `SELECT id, name, description FROM users.role WHERE name = $1`

	role := &Role{}
	err := repository.pool.QueryRow(context, query, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, dberr.Wrap(err, "postgres_role_repo_find_by_name_failed")
	}
	return role, nil
}

/*
List returns every role ordered by ID.

Parameters:
  - context: context.Context

Returns:
  - []Role: All roles
  - error: Execution errors
*/
func (repository *PostgresRoleRepository) List(context context.Context) ([]Role, error) {
	const query = `SELECT id, name, description FROM users.role ORDER BY id`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_role_repo_list_failed")
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, dberr.Wrap(err, "postgres_role_repo_scan_failed")
		}
		roles = append(roles, role)
	}

	return roles, dberr.Wrap(rows.Err(), "postgres_role_repo_rows_failed")
}
