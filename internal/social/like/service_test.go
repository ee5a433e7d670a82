// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/pkg/pagination"
)

type fakeRepository struct {
	likes  map[int]*Like
	nextID int
	posts  map[int]bool
}

func newFakeRepository(postIDs ...int) *fakeRepository {
	posts := make(map[int]bool)
	for _, id := range postIDs {
		posts[id] = true
	}
	return &fakeRepository{likes: make(map[int]*Like), nextID: 1, posts: posts}
}

func (r *fakeRepository) Create(_ context.Context, like *Like) error {
	if like.PostID != nil && !r.posts[*like.PostID] {
		return apperr.NotFound("Post")
	}
	for _, stored := range r.likes {
		if stored.UserID == like.UserID && sameTarget(stored, like) {
			return apperr.Conflict("Already liked")
		}
	}
	like.ID = r.nextID
	r.nextID++
	stored := *like
	r.likes[like.ID] = &stored
	return nil
}

func sameTarget(a, b *Like) bool {
	if a.PostID != nil && b.PostID != nil {
		return *a.PostID == *b.PostID
	}
	if a.CommentID != nil && b.CommentID != nil {
		return *a.CommentID == *b.CommentID
	}
	return false
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*Like, error) {
	if stored, ok := r.likes[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound("Like")
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	delete(r.likes, id)
	return nil
}

func (r *fakeRepository) ListByTarget(_ context.Context, ref string, targetID int, _ pagination.Params) ([]Like, int, error) {
	var result []Like
	for _, stored := range r.likes {
		if ref == RefPost && stored.PostID != nil && *stored.PostID == targetID {
			result = append(result, *stored)
		}
		if ref == RefComment && stored.CommentID != nil && *stored.CommentID == targetID {
			result = append(result, *stored)
		}
	}
	return result, len(result), nil
}

type repoOwnerStore struct{ repo *fakeRepository }

func (s *repoOwnerStore) OwnerID(_ context.Context, _ string, id int) (int, error) {
	if stored, ok := s.repo.likes[id]; ok {
		return stored.UserID, nil
	}
	return 0, apperr.NotFound("Like")
}

type fakeRecorder struct {
	actions []audit.Action
}

func (r *fakeRecorder) Record(_ context.Context, action audit.Action, _ *sec.AuthClaims, _ string, _ *int, _ any) {
	r.actions = append(r.actions, action)
}

var (
	member = &sec.AuthClaims{UserID: 1, RoleID: sec.RoleMember}
	other  = &sec.AuthClaims{UserID: 2, RoleID: sec.RoleMember}
)

func newTestService(repo *fakeRepository, trail *fakeRecorder) *Service {
	return NewService(repo, authz.NewGuard(&repoOwnerStore{repo: repo}), trail)
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepository(10)
	trail := &fakeRecorder{}
	service := newTestService(repo, trail)

	like, err := service.Create(context.Background(), member, RefPost, 10)
	require.NoError(t, err)
	require.NotNil(t, like.PostID)
	assert.Equal(t, 10, *like.PostID)
	assert.Nil(t, like.CommentID)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, trail.actions)
}

func TestService_Create_Duplicate(t *testing.T) {
	repo := newFakeRepository(10)
	service := newTestService(repo, &fakeRecorder{})

	_, err := service.Create(context.Background(), member, RefPost, 10)
	require.NoError(t, err)

	// Same user, same target: conflict.
	_, err = service.Create(context.Background(), member, RefPost, 10)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// A different user may still like it.
	_, err = service.Create(context.Background(), other, RefPost, 10)
	assert.NoError(t, err)
}

func TestService_Create_InvalidRef(t *testing.T) {
	service := newTestService(newFakeRepository(10), &fakeRecorder{})

	_, err := service.Create(context.Background(), member, "story", 10)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_Create_UnknownTarget(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeRecorder{})

	_, err := service.Create(context.Background(), member, RefPost, 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_Delete_Ownership(t *testing.T) {
	repo := newFakeRepository(10)
	service := newTestService(repo, &fakeRecorder{})

	like, err := service.Create(context.Background(), member, RefPost, 10)
	require.NoError(t, err)

	err = service.Delete(context.Background(), other, like.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.Delete(context.Background(), member, like.ID))
	assert.Empty(t, repo.likes)
}
