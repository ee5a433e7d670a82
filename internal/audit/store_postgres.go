// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ripple/internal/platform/database/schema"
	"github.com/taibuivan/ripple/internal/platform/dberr"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the trail Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Insert appends a new entry to the audit.useraction table.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Insert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.AuditUserAction.Table,
		schema.AuditUserAction.Action,
		schema.AuditUserAction.UserID,
		schema.AuditUserAction.EntityType,
		schema.AuditUserAction.EntityID,
		schema.AuditUserAction.EntitySnapshot,
		schema.AuditUserAction.Timestamp,
		schema.AuditUserAction.ID,
	)

	err := repository.pool.QueryRow(context, query,
		entry.Action,
		entry.ActorID,
		entry.EntityType,
		entry.EntityID,
		entry.Snapshot,
		entry.Timestamp,
	).Scan(&entry.ID)

	return dberr.Wrap(err, "postgres_audit_repo_insert_failed")
}

/*
List returns a filtered, paginated page of the trail, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []Entry: The page of entries
  - int: Total matching entries
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]Entry, int, error) {
	where, args := buildFilter(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", schema.AuditUserAction.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_audit_repo_count_failed")
	}

	listQuery := fmt.Sprintf(`%s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d`,
		entrySelect(), where, schema.AuditUserAction.Timestamp, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	entries, err := repository.scanEntries(context, listQuery, args)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

/*
All returns every entry matching the filter, oldest first.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []Entry: Matching entries in chronological order
  - error: Execution errors
*/
func (repository *PostgresRepository) All(context context.Context, filter Filter) ([]Entry, error) {
	where, args := buildFilter(filter)

	// Chronological order matters: the statistics service builds its report
	// buckets in encounter order.
	query := fmt.Sprintf("%s%s ORDER BY %s ASC, %s ASC",
		entrySelect(), where, schema.AuditUserAction.Timestamp, schema.AuditUserAction.ID)

	return repository.scanEntries(context, query, args)
}

// entrySelect builds the shared SELECT clause for trail reads.
func entrySelect() string {
	return fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s FROM %s",
		schema.AuditUserAction.ID,
		schema.AuditUserAction.Action,
		schema.AuditUserAction.UserID,
		schema.AuditUserAction.EntityType,
		schema.AuditUserAction.EntityID,
		schema.AuditUserAction.EntitySnapshot,
		schema.AuditUserAction.Timestamp,
		schema.AuditUserAction.Table,
	)
}

// buildFilter converts a Filter into a WHERE clause and its arguments.
func buildFilter(filter Filter) (string, []any) {
	var conditions []string
	var args []any

	appendCondition := func(column, op string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}

	if filter.ActorID != nil {
		appendCondition(schema.AuditUserAction.UserID, "=", *filter.ActorID)
	}
	if filter.Action != nil {
		appendCondition(schema.AuditUserAction.Action, "=", *filter.Action)
	}
	if len(filter.EntityTypes) > 0 {
		args = append(args, filter.EntityTypes)
		conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", schema.AuditUserAction.EntityType, len(args)))
	}
	if filter.From != nil {
		appendCondition(schema.AuditUserAction.Timestamp, ">=", *filter.From)
	}
	if filter.To != nil {
		appendCondition(schema.AuditUserAction.Timestamp, "<=", *filter.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanEntries executes a trail query and hydrates the result rows.
func (repository *PostgresRepository) scanEntries(context context.Context, query string, args []any) ([]Entry, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_audit_repo_query_failed")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.ActorID,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Snapshot,
			&entry.Timestamp,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_audit_repo_scan_failed")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "postgres_audit_repo_rows_failed")
}
