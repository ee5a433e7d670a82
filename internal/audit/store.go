// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"

	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the append-only data access contract for the trail.
type Repository interface {

	/*
		Insert appends a new entry to the trail.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		List returns a filtered, paginated page of the trail, newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - params: pagination.Params

		Returns:
		  - []Entry: The page of entries
		  - int: Total matching entries
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, params pagination.Params) ([]Entry, int, error)

	/*
		All returns every entry matching the filter, oldest first.

		Used by the statistics aggregation, which buckets entries by
		timestamp in encounter order.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - []Entry: Matching entries in chronological order
		  - error: Retrieval failures
	*/
	All(context context.Context, filter Filter) ([]Entry, error)
}
