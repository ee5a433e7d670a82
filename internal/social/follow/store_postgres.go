// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/dberr"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the follow Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, follow *Follow) error {
	const query = `
		INSERT INTO social.follower (followerid, followingid)
		VALUES ($1, $2)
		RETURNING id, createdat`

	err := repository.pool.QueryRow(context, query,
		follow.FollowerID,
		follow.FollowingID,
	).Scan(&follow.ID, &follow.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Already following this user")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return dberr.Wrap(err, "postgres_follow_repo_create_failed")
	}

	return nil
}

func (repository *PostgresRepository) DeleteByPair(context context.Context, followerID, followingID int) error {
	const query = "DELETE FROM social.follower WHERE followerid = $1 AND followingid = $2"

	tag, err := repository.pool.Exec(context, query, followerID, followingID)
	if err != nil {
		return dberr.Wrap(err, "postgres_follow_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Follow")
	}
	return nil
}

func (repository *PostgresRepository) Followers(context context.Context, userID int, params pagination.Params) ([]Edge, int, error) {
	// The counterpart is the follower side of the edge.
	const countQuery = "SELECT COUNT(*) FROM social.follower WHERE followingid = $1"
	const listQuery = `
		SELECT account.id, account.name, account.avatarurl, follower.createdat
		FROM social.follower AS follower
		JOIN users.account AS account ON account.id = follower.followerid
		WHERE follower.followingid = $1
		ORDER BY follower.createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.listEdges(context, countQuery, listQuery, userID, params)
}

func (repository *PostgresRepository) Following(context context.Context, userID int, params pagination.Params) ([]Edge, int, error) {
	// The counterpart is the followed side of the edge.
	const countQuery = "SELECT COUNT(*) FROM social.follower WHERE followerid = $1"
	const listQuery = `
		SELECT account.id, account.name, account.avatarurl, follower.createdat
		FROM social.follower AS follower
		JOIN users.account AS account ON account.id = follower.followingid
		WHERE follower.followerid = $1
		ORDER BY follower.createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.listEdges(context, countQuery, listQuery, userID, params)
}

func (repository *PostgresRepository) listEdges(context context.Context, countQuery, listQuery string, userID int, params pagination.Params) ([]Edge, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_follow_repo_count_failed")
	}

	rows, err := repository.pool.Query(context, listQuery, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_follow_repo_list_failed")
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var edge Edge
		if err := rows.Scan(&edge.UserID, &edge.Name, &edge.AvatarURL, &edge.FollowedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_follow_repo_scan_failed")
		}
		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_follow_repo_rows_failed")
	}

	return edges, total, nil
}
