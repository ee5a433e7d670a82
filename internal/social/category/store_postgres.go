// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/dberr"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the category Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO social.category (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		category.Name,
		category.Slug,
		category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A category with this name already exists")
		}
		return dberr.Wrap(err, "postgres_category_repo_create_failed")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Category, error) {
	const query = `
		SELECT id, name, slug, description, createdat, updatedat
		FROM social.category
		WHERE id = $1`

	category := &Category{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "postgres_category_repo_find_failed")
	}

	return category, nil
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE social.category
		SET name = $2, slug = $3, description = $4, updatedat = $5
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
	)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A category with this name already exists")
	}

	return dberr.Wrap(err, "postgres_category_repo_update_failed")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = "DELETE FROM social.category WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_category_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Category, int, error) {
	const countQuery = "SELECT COUNT(*) FROM social.category"
	const listQuery = `
		SELECT id, name, slug, description, createdat, updatedat
		FROM social.category
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_count_failed")
	}

	rows, err := repository.pool.Query(context, listQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_list_failed")
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_category_repo_scan_failed")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_rows_failed")
	}

	return categories, total, nil
}

func (repository *PostgresRepository) AttachPost(context context.Context, categoryID, postID int) error {
	const query = "INSERT INTO social.postcategory (categoryid, postid) VALUES ($1, $2)"

	_, err := repository.pool.Exec(context, query, categoryID, postID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Post is already in this category")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Category or post")
		}
		return dberr.Wrap(err, "postgres_category_repo_attach_failed")
	}

	return nil
}

func (repository *PostgresRepository) DetachPost(context context.Context, categoryID, postID int) error {
	const query = "DELETE FROM social.postcategory WHERE categoryid = $1 AND postid = $2"

	tag, err := repository.pool.Exec(context, query, categoryID, postID)
	if err != nil {
		return dberr.Wrap(err, "postgres_category_repo_detach_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Assignment")
	}
	return nil
}

func (repository *PostgresRepository) PostsByCategory(context context.Context, categoryID int, params pagination.Params) ([]post.Post, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM social.postcategory AS assignment
		JOIN social.post AS post ON post.id = assignment.postid
		WHERE assignment.categoryid = $1 AND post.isarchived = FALSE`

	const listQuery = `
		SELECT post.id, post.userid, post.title, post.content, post.imageurl,
		       post.isarchived, post.createdat, post.updatedat
		FROM social.postcategory AS assignment
		JOIN social.post AS post ON post.id = assignment.postid
		WHERE assignment.categoryid = $1 AND post.isarchived = FALSE
		ORDER BY post.createdat DESC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_posts_count_failed")
	}

	rows, err := repository.pool.Query(context, listQuery, categoryID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_posts_list_failed")
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		var entry post.Post
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&entry.Content,
			&entry.ImageURL,
			&entry.IsArchived,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_category_repo_posts_scan_failed")
		}
		posts = append(posts, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_category_repo_posts_rows_failed")
	}

	return posts, total, nil
}
