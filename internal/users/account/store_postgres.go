// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/dberr"
	"github.com/taibuivan/ripple/internal/users/auth"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the account Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountSelectColumns = `
	SELECT id, email, passwordhash, name, avatarurl, roleid, isverified,
	       resettoken, resettokenexpires, createdat, updatedat
	FROM users.account`

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*auth.User, error) {
	const query = accountSelectColumns + ` WHERE id = $1`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
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
		return nil, dberr.Wrap(err, "postgres_account_repo_find_failed")
	}

	return user, nil
}

/*
Search returns a page of accounts matching the term on name or email,
ordered by name. An empty term matches every account.

Parameters:
  - context: context.Context
  - term: string
  - params: pagination.Params

Returns:
  - []auth.User: The page of accounts
  - int: Total matching accounts
  - error: Execution errors
*/
func (repository *PostgresRepository) Search(context context.Context, term string, params pagination.Params) ([]auth.User, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE name ILIKE $1 OR email ILIKE $1`

	const listQuery = accountSelectColumns + `
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	pattern := "%" + term + "%"

	var total int
	if err := repository.pool.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_count_failed")
	}

	rows, err := repository.pool.Query(context, listQuery, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_search_failed")
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var user auth.User
		if err := rows.Scan(
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
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_account_repo_scan_failed")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_account_repo_rows_failed")
	}

	return users, total, nil
}

/*
Update persists the mutable profile fields of an account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.Conflict on duplicate email, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET email = $2, passwordhash = $3, name = $4, avatarurl = $5, updatedat = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.AvatarURL,
		user.UpdatedAt,
	)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Email is already registered")
	}

	return dberr.Wrap(err, "postgres_account_repo_update_failed")
}

/*
UpdateRole reassigns the account's role.

Parameters:
  - context: context.Context
  - userID: int
  - roleID: int

Returns:
  - error: apperr.NotFound if the account does not exist, or execution errors
*/
func (repository *PostgresRepository) UpdateRole(context context.Context, userID, roleID int) error {
	const query = `
		UPDATE users.account
		SET roleid = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, roleID, time.Now())
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_update_role_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
Delete permanently removes an account. Posts, comments, likes, and follower
edges referencing it are removed by ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: apperr.NotFound if the account does not exist, or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = "DELETE FROM users.account WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_account_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
