// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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
	comments map[int]*Comment
	nextID   int
	posts    map[int]bool
}

func newFakeRepository(postIDs ...int) *fakeRepository {
	posts := make(map[int]bool)
	for _, id := range postIDs {
		posts[id] = true
	}
	return &fakeRepository{comments: make(map[int]*Comment), nextID: 1, posts: posts}
}

func (r *fakeRepository) Create(_ context.Context, comment *Comment) error {
	if !r.posts[comment.PostID] {
		return apperr.NotFound("Post")
	}
	comment.ID = r.nextID
	r.nextID++
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*Comment, error) {
	if stored, ok := r.comments[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (r *fakeRepository) UpdateContent(_ context.Context, id int, content string) error {
	if stored, ok := r.comments[id]; ok {
		stored.Content = content
		return nil
	}
	return apperr.NotFound("Comment")
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeRepository) ListByPost(_ context.Context, postID int, _ pagination.Params) ([]Comment, int, error) {
	var result []Comment
	for _, stored := range r.comments {
		if stored.PostID == postID {
			result = append(result, *stored)
		}
	}
	return result, len(result), nil
}

type repoOwnerStore struct{ repo *fakeRepository }

func (s *repoOwnerStore) OwnerID(_ context.Context, _ string, id int) (int, error) {
	if stored, ok := s.repo.comments[id]; ok {
		return stored.UserID, nil
	}
	return 0, apperr.NotFound("Comment")
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
	admin  = &sec.AuthClaims{UserID: 9, RoleID: sec.RoleAdmin}
)

func newTestService(repo *fakeRepository, trail *fakeRecorder) *Service {
	return NewService(repo, authz.NewGuard(&repoOwnerStore{repo: repo}), trail)
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepository(10)
	trail := &fakeRecorder{}
	service := newTestService(repo, trail)

	comment, err := service.Create(context.Background(), member, 10, "Nice shot!")
	require.NoError(t, err)
	assert.Equal(t, 1, comment.ID)
	assert.Equal(t, member.UserID, comment.UserID)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, trail.actions)
}

func TestService_Create_UnknownPost(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeRecorder{})

	_, err := service.Create(context.Background(), member, 404, "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_Update_Ownership(t *testing.T) {
	repo := newFakeRepository(10)
	service := newTestService(repo, &fakeRecorder{})

	created, err := service.Create(context.Background(), member, 10, "original")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), other, created.ID, "edited by stranger")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.Update(context.Background(), member, created.ID, "edited by owner")
	require.NoError(t, err)
	assert.Equal(t, "edited by owner", updated.Content)

	updated, err = service.Update(context.Background(), admin, created.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepository(10)
	trail := &fakeRecorder{}
	service := newTestService(repo, trail)

	created, err := service.Create(context.Background(), member, 10, "to be removed")
	require.NoError(t, err)

	err = service.Delete(context.Background(), other, created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.Delete(context.Background(), member, created.ID))
	assert.Empty(t, repo.comments)

	err = service.Delete(context.Background(), member, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
