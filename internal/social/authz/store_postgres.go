// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/database/schema"
	"github.com/taibuivan/ripple/internal/platform/dberr"
)

// PostgresOwnerStore implements OwnerStore with one lookup per entity table.
type PostgresOwnerStore struct {
	pool *pgxpool.Pool
}

// NewOwnerStore creates a new PostgreSQL implementation of OwnerStore.
func NewOwnerStore(pool *pgxpool.Pool) *PostgresOwnerStore {
	return &PostgresOwnerStore{pool: pool}
}

/*
OwnerID resolves the owning user of an entity row.

Parameters:
  - context: context.Context
  - entityType: string (one of the Entity* constants)
  - id: int

Returns:
  - int: Owning user ID
  - error: apperr.NotFound if the row does not exist, or execution errors
*/
func (store *PostgresOwnerStore) OwnerID(context context.Context, entityType string, id int) (int, error) {
	table, ownerColumn, err := ownerLookup(entityType)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", ownerColumn, table)

	var ownerID int
	if err := store.pool.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound(resourceName(entityType))
		}
		return 0, dberr.Wrap(err, "postgres_owner_store_lookup_failed")
	}

	return ownerID, nil
}

// ownerLookup maps an entity type to its table and owner column.
func ownerLookup(entityType string) (table, ownerColumn string, err error) {
	switch entityType {
	case EntityPost:
		return schema.SocialPost.Table, schema.SocialPost.UserID, nil
	case EntityComment:
		return schema.SocialComment.Table, schema.SocialComment.UserID, nil
	case EntityLike:
		return schema.SocialLike.Table, schema.SocialLike.UserID, nil
	case EntityFollow:
		return schema.SocialFollower.Table, schema.SocialFollower.FollowerID, nil
	case EntityUser:
		return schema.UserAccount.Table, schema.UserAccount.ID, nil
	default:
		return "", "", apperr.Internal(fmt.Errorf("authz_unknown_entity_type: %s", entityType))
	}
}

// resourceName returns the client-facing resource label for NotFound errors.
func resourceName(entityType string) string {
	switch entityType {
	case EntityPost:
		return "Post"
	case EntityComment:
		return "Comment"
	case EntityLike:
		return "Like"
	case EntityFollow:
		return "Follow"
	case EntityUser:
		return "User"
	default:
		return "Resource"
	}
}
