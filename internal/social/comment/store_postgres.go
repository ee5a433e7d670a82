// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"time"

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

// NewRepository creates a new PostgreSQL implementation of the comment Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (userid, postid, content)
		VALUES ($1, $2, $3)
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		comment.UserID,
		comment.PostID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Post")
		}
		return dberr.Wrap(err, "postgres_comment_repo_create_failed")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Comment, error) {
	const query = `
		SELECT id, userid, postid, content, createdat, updatedat
		FROM social.comment
		WHERE id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PostID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "postgres_comment_repo_find_failed")
	}

	return comment, nil
}

func (repository *PostgresRepository) UpdateContent(context context.Context, id int, content string) error {
	const query = `
		UPDATE social.comment
		SET content = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, id, content, time.Now())
	return dberr.Wrap(err, "postgres_comment_repo_update_failed")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = "DELETE FROM social.comment WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "postgres_comment_repo_delete_failed")
}

func (repository *PostgresRepository) ListByPost(context context.Context, postID int, params pagination.Params) ([]Comment, int, error) {
	const countQuery = "SELECT COUNT(*) FROM social.comment WHERE postid = $1"

	var total int
	if err := repository.pool.QueryRow(context, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_comment_repo_count_failed")
	}

	const listQuery = `
		SELECT id, userid, postid, content, createdat, updatedat
		FROM social.comment
		WHERE postid = $1
		ORDER BY createdat ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, listQuery, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_comment_repo_list_failed")
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.PostID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_comment_repo_scan_failed")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_comment_repo_rows_failed")
	}

	return comments, total, nil
}
