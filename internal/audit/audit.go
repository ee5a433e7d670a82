// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit implements the user-action trail of the Ripple platform.

Every create, retrieve, update, delete, archive, and unarchive performed
through the API is recorded as an immutable [Entry]. The trail feeds the
admin activity endpoints and the statistics aggregation.

# Architecture

  - Logger: fire-and-forget recorder injected into the domain services.
  - Repository: append-only storage plus filtered reads for reporting.

Recording is deliberately best-effort: a failed audit insert must never
fail the user-facing operation it describes.
*/
package audit

import (
	"encoding/json"
	"time"
)

// Action identifies the kind of operation an entry describes.
type Action string

const (
	ActionCreate    Action = "create"
	ActionRetrieve  Action = "retrieve"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
)

// Valid reports whether the action is one of the known kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRetrieve, ActionUpdate, ActionDelete, ActionArchive, ActionUnarchive:
		return true
	}
	return false
}

// Entry is a single immutable record in the user-action trail.
type Entry struct {
	ID     int64  `json:"id"`
	Action Action `json:"action"`

	// ActorID is nil when the action was performed anonymously, e.g. a
	// public post read without a session token.
	ActorID *int `json:"user_id,omitempty"`

	EntityType string `json:"entity_type"`
	EntityID   *int   `json:"entity_id,omitempty"`

	// Snapshot captures the entity state at the time of the action.
	Snapshot json.RawMessage `json:"entity_snapshot,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Filter narrows trail reads for the admin endpoints and statistics.
// Every clause is optional and independent; a zero Filter matches everything.
type Filter struct {
	ActorID     *int
	Action      *Action
	EntityTypes []string
	From        *time.Time
	To          *time.Time
}
