// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
)

// # Fakes

type fakeRepository struct {
	posts      map[int]*Post
	nextID     int
	lastFilter *ListFilter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: make(map[int]*Post), nextID: 1}
}

func (r *fakeRepository) Create(_ context.Context, post *Post) error {
	post.ID = r.nextID
	r.nextID++
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*Post, error) {
	if stored, ok := r.posts[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound("Post")
}

func (r *fakeRepository) Update(_ context.Context, post *Post) error {
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakeRepository) SetArchived(_ context.Context, id int, archived bool) error {
	if stored, ok := r.posts[id]; ok {
		stored.IsArchived = archived
		return nil
	}
	return apperr.NotFound("Post")
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	delete(r.posts, id)
	return nil
}

func (r *fakeRepository) List(_ context.Context, filter ListFilter, _ pagination.Params) ([]Post, int, error) {
	r.lastFilter = &filter
	var result []Post
	for _, stored := range r.posts {
		if filter.UserID != nil && stored.UserID != *filter.UserID {
			continue
		}
		if filter.Archived != nil && stored.IsArchived != *filter.Archived {
			continue
		}
		result = append(result, *stored)
	}
	return result, len(result), nil
}

type fakeObjectStore struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (s *fakeObjectStore) Upload(_ context.Context, _ []byte) (string, error) {
	if s.failUpload {
		return "", apperr.Upstream("Image upload failed", errors.New("imgur down"))
	}
	s.uploads++
	return "https://i.imgur.com/upload.png", nil
}

func (s *fakeObjectStore) Delete(_ context.Context, imageURL string) error {
	s.deleted = append(s.deleted, imageURL)
	return nil
}

// guardOverRepo adapts the real Guard to the fake repository's rows.
type repoOwnerStore struct{ repo *fakeRepository }

func (s *repoOwnerStore) OwnerID(_ context.Context, _ string, id int) (int, error) {
	if stored, ok := s.repo.posts[id]; ok {
		return stored.UserID, nil
	}
	return 0, apperr.NotFound("Post")
}

type recordedAction struct {
	action   audit.Action
	actorID  *int
	entityID *int
}

type fakeRecorder struct {
	actions []recordedAction
}

func (r *fakeRecorder) Record(_ context.Context, action audit.Action, claims *sec.AuthClaims, _ string, entityID *int, _ any) {
	var actorID *int
	if claims != nil {
		id := claims.UserID
		actorID = &id
	}
	r.actions = append(r.actions, recordedAction{action: action, actorID: actorID, entityID: entityID})
}

func newTestService(repo *fakeRepository, objects *fakeObjectStore, trail *fakeRecorder) *Service {
	return NewService(repo, objects, authz.NewGuard(&repoOwnerStore{repo: repo}), trail)
}

var (
	member = &sec.AuthClaims{UserID: 1, RoleID: sec.RoleMember}
	other  = &sec.AuthClaims{UserID: 2, RoleID: sec.RoleMember}
	admin  = &sec.AuthClaims{UserID: 9, RoleID: sec.RoleAdmin}
)

// # Tests

func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	objects := &fakeObjectStore{}
	trail := &fakeRecorder{}
	service := newTestService(repo, objects, trail)

	post, err := service.Create(context.Background(), member, CreateInput{
		Title:   "First light",
		Content: "Morning over the bay.",
		Image:   []byte{0x89, 0x50},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, member.UserID, post.UserID)
	assert.Equal(t, "https://i.imgur.com/upload.png", post.ImageURL)
	assert.Equal(t, 1, objects.uploads)

	require.Len(t, trail.actions, 1)
	assert.Equal(t, audit.ActionCreate, trail.actions[0].action)
}

func TestService_Create_UploadFailure(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeObjectStore{failUpload: true}, &fakeRecorder{})

	_, err := service.Create(context.Background(), member, CreateInput{
		Title:   "Broken",
		Content: "x",
		Image:   []byte{0x01},
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_FAILURE", ae.Code)
}

func TestService_Get_RecordsAnonymousRetrieve(t *testing.T) {
	repo := newFakeRepository()
	trail := &fakeRecorder{}
	service := newTestService(repo, &fakeObjectStore{}, trail)

	created, err := service.Create(context.Background(), member, CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	trail.actions = nil

	post, err := service.Get(context.Background(), nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, post.ID)

	require.Len(t, trail.actions, 1)
	assert.Equal(t, audit.ActionRetrieve, trail.actions[0].action)
	assert.Nil(t, trail.actions[0].actorID)
}

func TestService_List_VisibilityPolicy(t *testing.T) {
	tests := []struct {
		name         string
		claims       *sec.AuthClaims
		input        ListInput
		wantUserID   *int
		wantArchived *bool
	}{
		{
			name:         "admin_default_hides_archived",
			claims:       admin,
			input:        ListInput{},
			wantUserID:   nil,
			wantArchived: pointer.To(false),
		},
		{
			name:         "admin_explicit_archived_wins",
			claims:       admin,
			input:        ListInput{Archived: pointer.To(true)},
			wantUserID:   nil,
			wantArchived: pointer.To(true),
		},
		{
			name:         "member_defaults_to_own_posts",
			claims:       member,
			input:        ListInput{},
			wantUserID:   pointer.To(1),
			wantArchived: nil,
		},
		{
			name:         "member_browsing_other_author_hides_archived",
			claims:       member,
			input:        ListInput{UserID: pointer.To(2), Archived: pointer.To(true)},
			wantUserID:   pointer.To(2),
			wantArchived: pointer.To(false),
		},
		{
			name:         "member_own_explicit_archived_wins",
			claims:       member,
			input:        ListInput{UserID: pointer.To(1), Archived: pointer.To(true)},
			wantUserID:   pointer.To(1),
			wantArchived: pointer.To(true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo, &fakeObjectStore{}, &fakeRecorder{})

			_, _, err := service.List(context.Background(), tt.claims, tt.input, pagination.Params{Page: 1, Limit: 20})
			require.NoError(t, err)

			require.NotNil(t, repo.lastFilter)
			assert.Equal(t, tt.wantUserID, repo.lastFilter.UserID)
			assert.Equal(t, tt.wantArchived, repo.lastFilter.Archived)
		})
	}
}

func TestService_List_CategoryFilterPassesThrough(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeObjectStore{}, &fakeRecorder{})

	input := ListInput{CategoryIDs: []int{3, 7}}
	_, _, err := service.List(context.Background(), admin, input, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, []int{3, 7}, repo.lastFilter.CategoryIDs)
}

func TestService_Update_Ownership(t *testing.T) {
	repo := newFakeRepository()
	trail := &fakeRecorder{}
	service := newTestService(repo, &fakeObjectStore{}, trail)

	created, err := service.Create(context.Background(), member, CreateInput{Title: "Old", Content: "c"})
	require.NoError(t, err)

	// A stranger is rejected.
	_, err = service.Update(context.Background(), other, created.ID, UpdateInput{Title: pointer.To("Hacked")})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The owner succeeds.
	updated, err := service.Update(context.Background(), member, created.ID, UpdateInput{Title: pointer.To("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "c", updated.Content)

	// An admin succeeds on someone else's post.
	updated, err = service.Update(context.Background(), admin, created.ID, UpdateInput{Content: pointer.To("moderated")})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
}

func TestService_Update_ReplacesImage(t *testing.T) {
	repo := newFakeRepository()
	objects := &fakeObjectStore{}
	service := newTestService(repo, objects, &fakeRecorder{})

	created, err := service.Create(context.Background(), member, CreateInput{
		Title: "t", Content: "c", Image: []byte{0x01},
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), member, created.ID, UpdateInput{Image: []byte{0x02}})
	require.NoError(t, err)

	assert.Equal(t, 2, objects.uploads)
	// The first upload was removed when replaced.
	assert.Equal(t, []string{"https://i.imgur.com/upload.png"}, objects.deleted)
}

func TestService_ArchiveLifecycle(t *testing.T) {
	repo := newFakeRepository()
	trail := &fakeRecorder{}
	service := newTestService(repo, &fakeObjectStore{}, trail)

	created, err := service.Create(context.Background(), member, CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, service.Archive(context.Background(), member, created.ID))
	assert.True(t, repo.posts[created.ID].IsArchived)

	require.NoError(t, service.Unarchive(context.Background(), member, created.ID))
	assert.False(t, repo.posts[created.ID].IsArchived)

	// create, archive, unarchive
	require.Len(t, trail.actions, 3)
	assert.Equal(t, audit.ActionArchive, trail.actions[1].action)
	assert.Equal(t, audit.ActionUnarchive, trail.actions[2].action)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepository()
	objects := &fakeObjectStore{}
	trail := &fakeRecorder{}
	service := newTestService(repo, objects, trail)

	created, err := service.Create(context.Background(), member, CreateInput{
		Title: "t", Content: "c", Image: []byte{0x01},
	})
	require.NoError(t, err)

	// A stranger cannot delete.
	err = service.Delete(context.Background(), other, created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The owner can; the hosted image goes with it.
	require.NoError(t, service.Delete(context.Background(), member, created.ID))
	assert.Empty(t, repo.posts)
	assert.Contains(t, objects.deleted, "https://i.imgur.com/upload.png")

	// Deleting again is a 404.
	err = service.Delete(context.Background(), member, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
