// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"

	"github.com/taibuivan/ripple/pkg/pagination"
)

// Repository defines the data access contract for likes.
type Repository interface {
	// Create persists a new like and assigns its ID. A duplicate
	// (user, target) pair returns apperr.Conflict; a missing target
	// returns apperr.NotFound.
	Create(context context.Context, like *Like) error

	// FindByID returns the like with the given ID.
	FindByID(context context.Context, id int) (*Like, error)

	// Delete permanently removes a like.
	Delete(context context.Context, id int) error

	// ListByTarget returns a page of likes on a post or comment, newest first.
	ListByTarget(context context.Context, ref string, targetID int, params pagination.Params) ([]Like, int, error)
}
