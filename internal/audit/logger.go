// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/taibuivan/ripple/internal/platform/sec"
)

// Logger records user actions into the trail.
//
// # Failure Policy
//
// Record is fire-and-forget. A broken trail insert is logged server-side but
// never propagated, so audit storage problems cannot fail the user-facing
// operation they describe.
type Logger struct {
	repository Repository
	log        *slog.Logger
}

// NewLogger constructs a Logger around the trail repository.
func NewLogger(repository Repository, log *slog.Logger) *Logger {
	return &Logger{repository: repository, log: log}
}

/*
Record appends an action to the trail.

Parameters:
  - context: context.Context
  - action: Action
  - claims: *sec.AuthClaims (nil records an anonymous actor)
  - entityType: string
  - entityID: *int
  - snapshot: any (marshalled to JSON; nil stores no snapshot)
*/
func (logger *Logger) Record(context context.Context, action Action, claims *sec.AuthClaims, entityType string, entityID *int, snapshot any) {
	entry := &Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  time.Now(),
	}

	if claims != nil {
		actorID := claims.UserID
		entry.ActorID = &actorID
	}

	if snapshot != nil {
		raw, err := json.Marshal(snapshot)
		if err != nil {
			logger.log.WarnContext(context, "audit_snapshot_marshal_failed",
				slog.String("entity_type", entityType),
				slog.String("action", string(action)),
				slog.String("error", err.Error()),
			)
		} else {
			entry.Snapshot = raw
		}
	}

	if err := logger.repository.Insert(context, entry); err != nil {
		logger.log.ErrorContext(context, "audit_record_failed",
			slog.String("entity_type", entityType),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}
