// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/pkg/pagination"
)

type fakeRepository struct {
	entries []*Entry
	fail    bool
}

func (r *fakeRepository) Insert(_ context.Context, entry *Entry) error {
	if r.fail {
		return errors.New("insert failed")
	}
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRepository) List(_ context.Context, _ Filter, _ pagination.Params) ([]Entry, int, error) {
	return nil, 0, nil
}

func (r *fakeRepository) All(_ context.Context, _ Filter) ([]Entry, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogger_Record(t *testing.T) {
	repo := &fakeRepository{}
	logger := NewLogger(repo, discardLogger())

	claims := &sec.AuthClaims{UserID: 7, RoleID: sec.RoleMember}
	postID := 42

	logger.Record(context.Background(), ActionCreate, claims, "post", &postID, map[string]string{
		"title": "hello",
	})

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]

	assert.Equal(t, ActionCreate, entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, 7, *entry.ActorID)
	assert.Equal(t, "post", entry.EntityType)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, 42, *entry.EntityID)
	assert.False(t, entry.Timestamp.IsZero())

	var snapshot map[string]string
	require.NoError(t, json.Unmarshal(entry.Snapshot, &snapshot))
	assert.Equal(t, "hello", snapshot["title"])
}

func TestLogger_Record_AnonymousActor(t *testing.T) {
	repo := &fakeRepository{}
	logger := NewLogger(repo, discardLogger())

	postID := 42
	logger.Record(context.Background(), ActionRetrieve, nil, "post", &postID, nil)

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].ActorID)
	assert.Nil(t, repo.entries[0].Snapshot)
}

func TestLogger_Record_StorageFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepository{fail: true}
	logger := NewLogger(repo, discardLogger())

	// Must not panic and must not propagate the failure.
	logger.Record(context.Background(), ActionDelete, nil, "comment", nil, nil)
	assert.Empty(t, repo.entries)
}

func TestAction_Valid(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionRetrieve, ActionUpdate, ActionDelete, ActionArchive, ActionUnarchive} {
		assert.True(t, action.Valid(), string(action))
	}
	assert.False(t, Action("login").Valid())
}
