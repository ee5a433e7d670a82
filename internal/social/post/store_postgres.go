// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// NewRepository creates a new PostgreSQL implementation of the post Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new post into the social.post table.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO social.post (userid, title, content, imageurl, isarchived)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		post.UserID,
		post.Title,
		post.Content,
		post.ImageURL,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	return dberr.Wrap(err, "postgres_post_repo_create_failed")
}

/*
FindByID retrieves a post by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Post, error) {
	const query = `
		SELECT id, userid, title, content, imageurl, isarchived, createdat, updatedat
		FROM social.post
		WHERE id = $1`

	post := &Post{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.IsArchived,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, dberr.Wrap(err, "postgres_post_repo_find_failed")
	}

	return post, nil
}

/*
Update persists changes to a post's mutable fields.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE social.post
		SET title = $2, content = $3, imageurl = $4, updatedat = $5
		WHERE id = $1`

	post.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.UpdatedAt,
	)

	return dberr.Wrap(err, "postgres_post_repo_update_failed")
}

/*
SetArchived flips the archive flag on a post.

Parameters:
  - context: context.Context
  - id: int
  - archived: bool

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) SetArchived(context context.Context, id int, archived bool) error {
	const query = `
		UPDATE social.post
		SET isarchived = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, id, archived, time.Now())
	return dberr.Wrap(err, "postgres_post_repo_set_archived_failed")
}

/*
Delete permanently removes a post. Dependent comments, likes, and category
assignments are removed by ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = "DELETE FROM social.post WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "postgres_post_repo_delete_failed")
}

/*
List returns a filtered, ordered, paginated page of posts.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []Post: The page of posts
  - int: Total matching posts
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]Post, int, error) {
	var conditions []string
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("userid = $%d", len(args)))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		conditions = append(conditions, fmt.Sprintf("isarchived = $%d", len(args)))
	}
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM social.postcategory WHERE postid = social.post.id AND categoryid = ANY($%d))", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM social.post" + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_post_repo_count_failed")
	}

	listQuery := fmt.Sprintf(`
		SELECT id, userid, title, content, imageurl, isarchived, createdat, updatedat
		FROM social.post%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		where, sortColumn(filter.Sort), sortDirection(filter.Descending), len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_post_repo_list_failed")
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Title,
			&post.Content,
			&post.ImageURL,
			&post.IsArchived,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_post_repo_scan_failed")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_post_repo_rows_failed")
	}

	return posts, total, nil
}

// sortColumn whitelists the ORDER BY column. Anything unknown falls back to
// creation time so user input can never reach the SQL string.
func sortColumn(sort string) string {
	switch sort {
	case SortTitle:
		return "title"
	case SortCreatedAt:
		return "createdat"
	default:
		return "createdat"
	}
}

func sortDirection(descending bool) string {
	if descending {
		return "DESC"
	}
	return "ASC"
}
