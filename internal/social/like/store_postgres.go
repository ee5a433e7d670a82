// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/dberr"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the like Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, like *Like) error {
	const query = `
		INSERT INTO social.likes (userid, postid, commentid)
		VALUES ($1, $2, $3)
		RETURNING id, createdat`

	err := repository.pool.QueryRow(context, query,
		like.UserID,
		like.PostID,
		like.CommentID,
	).Scan(&like.ID, &like.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Already liked")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound(targetName(like))
		}
		return dberr.Wrap(err, "postgres_like_repo_create_failed")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Like, error) {
	const query = `
		SELECT id, userid, postid, commentid, createdat
		FROM social.likes
		WHERE id = $1`

	like := &Like{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&like.ID,
		&like.UserID,
		&like.PostID,
		&like.CommentID,
		&like.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Like")
		}
		return nil, dberr.Wrap(err, "postgres_like_repo_find_failed")
	}

	return like, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = "DELETE FROM social.likes WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "postgres_like_repo_delete_failed")
}

func (repository *PostgresRepository) ListByTarget(context context.Context, ref string, targetID int, params pagination.Params) ([]Like, int, error) {
	column := "postid"
	if ref == RefComment {
		column = "commentid"
	}

	countQuery := "SELECT COUNT(*) FROM social.likes WHERE " + column + " = $1"

	var total int
	if err := repository.pool.QueryRow(context, countQuery, targetID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_like_repo_count_failed")
	}

	listQuery := `
		SELECT id, userid, postid, commentid, createdat
		FROM social.likes
		WHERE ` + column + ` = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, listQuery, targetID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_like_repo_list_failed")
	}
	defer rows.Close()

	var likes []Like
	for rows.Next() {
		var like Like
		if err := rows.Scan(&like.ID, &like.UserID, &like.PostID, &like.CommentID, &like.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_like_repo_scan_failed")
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_like_repo_rows_failed")
	}

	return likes, total, nil
}

func targetName(like *Like) string {
	if like.CommentID != nil {
		return "Comment"
	}
	return "Post"
}
