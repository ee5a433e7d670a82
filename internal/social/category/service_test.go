// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
)

type assignment struct {
	categoryID int
	postID     int
}

type fakeRepository struct {
	categories  map[int]*Category
	nextID      int
	postOwners  map[int]int
	assignments []assignment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: make(map[int]*Category),
		nextID:     1,
		postOwners: make(map[int]int),
	}
}

func (r *fakeRepository) Create(_ context.Context, category *Category) error {
	for _, stored := range r.categories {
		if stored.Slug == category.Slug {
			return apperr.Conflict("A category with this name already exists")
		}
	}
	category.ID = r.nextID
	r.nextID++
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*Category, error) {
	if stored, ok := r.categories[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound("Category")
}

func (r *fakeRepository) Update(_ context.Context, category *Category) error {
	for id, stored := range r.categories {
		if id != category.ID && stored.Slug == category.Slug {
			return apperr.Conflict("A category with this name already exists")
		}
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("Category")
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeRepository) List(_ context.Context, _ pagination.Params) ([]Category, int, error) {
	var result []Category
	for _, stored := range r.categories {
		result = append(result, *stored)
	}
	return result, len(result), nil
}

func (r *fakeRepository) AttachPost(_ context.Context, categoryID, postID int) error {
	if _, ok := r.categories[categoryID]; !ok {
		return apperr.NotFound("Category or post")
	}
	for _, a := range r.assignments {
		if a.categoryID == categoryID && a.postID == postID {
			return apperr.Conflict("Post is already in this category")
		}
	}
	r.assignments = append(r.assignments, assignment{categoryID: categoryID, postID: postID})
	return nil
}

func (r *fakeRepository) DetachPost(_ context.Context, categoryID, postID int) error {
	for i, a := range r.assignments {
		if a.categoryID == categoryID && a.postID == postID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Assignment")
}

func (r *fakeRepository) PostsByCategory(_ context.Context, categoryID int, _ pagination.Params) ([]post.Post, int, error) {
	var result []post.Post
	for _, a := range r.assignments {
		if a.categoryID == categoryID {
			result = append(result, post.Post{ID: a.postID, UserID: r.postOwners[a.postID]})
		}
	}
	return result, len(result), nil
}

type repoOwnerStore struct{ repo *fakeRepository }

func (s *repoOwnerStore) OwnerID(_ context.Context, _ string, id int) (int, error) {
	if owner, ok := s.repo.postOwners[id]; ok {
		return owner, nil
	}
	return 0, apperr.NotFound("Post")
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
	admin  = &sec.AuthClaims{UserID: 3, RoleID: sec.RoleAdmin}
)

func newTestService(repo *fakeRepository, trail *fakeRecorder) *Service {
	return NewService(repo, authz.NewGuard(&repoOwnerStore{repo: repo}), trail)
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	trail := &fakeRecorder{}
	service := newTestService(repo, trail)

	category, err := service.Create(context.Background(), admin, "Street Photography", "Candid city scenes")
	require.NoError(t, err)
	assert.Equal(t, "street-photography", category.Slug)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, trail.actions)
}

func TestService_Create_Invalid(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeRecorder{})

	tests := []struct {
		name         string
		categoryName string
	}{
		{name: "empty name", categoryName: ""},
		{name: "no sluggable characters", categoryName: "!!!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), admin, tc.categoryName, "")
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestService_Create_DuplicateSlug(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeRecorder{})

	_, err := service.Create(context.Background(), admin, "Street Photography", "")
	require.NoError(t, err)

	// Different casing, same slug.
	_, err = service.Create(context.Background(), admin, "STREET photography", "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_Update_RenameRegeneratesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeRecorder{})

	category, err := service.Create(context.Background(), admin, "Street Photography", "")
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), admin, category.ID, pointer.To("Urban Life"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Urban Life", updated.Name)
	assert.Equal(t, "urban-life", updated.Slug)

	// Description-only change keeps the slug.
	updated, err = service.Update(context.Background(), admin, category.ID, nil, pointer.To("City scenes"))
	require.NoError(t, err)
	assert.Equal(t, "urban-life", updated.Slug)
	assert.Equal(t, "City scenes", updated.Description)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepository()
	trail := &fakeRecorder{}
	service := newTestService(repo, trail)

	category, err := service.Create(context.Background(), admin, "Street Photography", "")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), admin, category.ID))
	assert.Empty(t, repo.categories)

	err = service.Delete(context.Background(), admin, category.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_AttachPost_Ownership(t *testing.T) {
	repo := newFakeRepository()
	repo.postOwners[10] = member.UserID
	service := newTestService(repo, &fakeRecorder{})

	category, err := service.Create(context.Background(), admin, "Street Photography", "")
	require.NoError(t, err)

	// A stranger cannot categorize someone else's post.
	err = service.AttachPost(context.Background(), other, category.ID, 10)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.AttachPost(context.Background(), member, category.ID, 10))

	// Duplicate assignment is a conflict.
	err = service.AttachPost(context.Background(), member, category.ID, 10)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	posts, total, err := service.PostsByCategory(context.Background(), category.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, 10, posts[0].ID)
}

func TestService_DetachPost(t *testing.T) {
	repo := newFakeRepository()
	repo.postOwners[10] = member.UserID
	service := newTestService(repo, &fakeRecorder{})

	category, err := service.Create(context.Background(), admin, "Street Photography", "")
	require.NoError(t, err)
	require.NoError(t, service.AttachPost(context.Background(), member, category.ID, 10))

	require.NoError(t, service.DetachPost(context.Background(), member, category.ID, 10))

	err = service.DetachPost(context.Background(), member, category.ID, 10)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_PostsByCategory_UnknownCategory(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeRecorder{})

	_, _, err := service.PostsByCategory(context.Background(), 404, pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
