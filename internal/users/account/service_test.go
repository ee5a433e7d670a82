// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/internal/users/auth"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
)

type fakeRepository struct {
	users map[int]*auth.User
}

func newFakeRepository(users ...*auth.User) *fakeRepository {
	repo := &fakeRepository{users: make(map[int]*auth.User)}
	for _, user := range users {
		stored := *user
		repo.users[user.ID] = &stored
	}
	return repo
}

func (r *fakeRepository) FindByID(_ context.Context, id int) (*auth.User, error) {
	if stored, ok := r.users[id]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) Search(_ context.Context, term string, _ pagination.Params) ([]auth.User, int, error) {
	var result []auth.User
	for _, stored := range r.users {
		if term == "" ||
			strings.Contains(strings.ToLower(stored.Name), strings.ToLower(term)) ||
			strings.Contains(strings.ToLower(stored.Email), strings.ToLower(term)) {
			result = append(result, *stored)
		}
	}
	return result, len(result), nil
}

func (r *fakeRepository) Update(_ context.Context, user *auth.User) error {
	for id, stored := range r.users {
		if id != user.ID && stored.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeRepository) UpdateRole(_ context.Context, userID, roleID int) error {
	stored, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.RoleID = sec.RoleID(roleID)
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

type fakePostLister struct {
	posts      []post.Post
	lastFilter post.ListFilter
}

func (l *fakePostLister) List(_ context.Context, filter post.ListFilter, _ pagination.Params) ([]post.Post, int, error) {
	l.lastFilter = filter
	var result []post.Post
	for _, entry := range l.posts {
		if filter.UserID != nil && entry.UserID != *filter.UserID {
			continue
		}
		result = append(result, entry)
	}
	return result, len(result), nil
}

type fakeRoleFinder struct {
	roles map[int]*auth.Role
}

func (f *fakeRoleFinder) FindByID(_ context.Context, id int) (*auth.Role, error) {
	if role, ok := f.roles[id]; ok {
		return role, nil
	}
	return nil, apperr.NotFound("Role")
}

type fakeObjectStore struct {
	uploads int
	deleted []string
}

func (s *fakeObjectStore) Upload(_ context.Context, _ []byte) (string, error) {
	s.uploads++
	return "https://images.example/avatar-" + strings.Repeat("x", s.uploads), nil
}

func (s *fakeObjectStore) Delete(_ context.Context, imageURL string) error {
	s.deleted = append(s.deleted, imageURL)
	return nil
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

func memberUser() *auth.User {
	return &auth.User{
		ID:         1,
		Email:      "ann@ripple.social",
		Name:       "Ann",
		RoleID:     sec.RoleMember,
		IsVerified: true,
	}
}

func newTestService(repo *fakeRepository, posts *fakePostLister, objects *fakeObjectStore) *Service {
	roles := &fakeRoleFinder{roles: map[int]*auth.Role{
		int(sec.RoleMember): {ID: int(sec.RoleMember), Name: "User"},
		int(sec.RoleAdmin):  {ID: int(sec.RoleAdmin), Name: "Admin"},
	}}
	return NewService(repo, posts, roles, objects, &fakeRecorder{})
}

func TestService_GetProfile(t *testing.T) {
	repo := newFakeRepository(memberUser())
	posts := &fakePostLister{posts: []post.Post{
		{ID: 10, UserID: 1, Title: "First"},
		{ID: 11, UserID: 2, Title: "Someone else's"},
	}}
	service := newTestService(repo, posts, &fakeObjectStore{})

	profile, total, err := service.GetProfile(context.Background(), nil, 1, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.User.Name)
	assert.Equal(t, 1, total)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, 10, profile.Posts[0].ID)

	// Profiles never expose archived posts.
	require.NotNil(t, posts.lastFilter.Archived)
	assert.False(t, *posts.lastFilter.Archived)
}

func TestService_GetProfile_UnknownUser(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakePostLister{}, &fakeObjectStore{})

	_, _, err := service.GetProfile(context.Background(), nil, 404, pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_UpdateProfile_Ownership(t *testing.T) {
	repo := newFakeRepository(memberUser())
	service := newTestService(repo, &fakePostLister{}, &fakeObjectStore{})

	// A stranger cannot edit the profile.
	_, err := service.UpdateProfile(context.Background(), other, 1, UpdateInput{Name: pointer.To("Hacked")})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The owner can.
	user, err := service.UpdateProfile(context.Background(), member, 1, UpdateInput{Name: pointer.To("Ann B.")})
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", user.Name)

	// So can an admin.
	user, err = service.UpdateProfile(context.Background(), admin, 1, UpdateInput{Name: pointer.To("Ann C.")})
	require.NoError(t, err)
	assert.Equal(t, "Ann C.", user.Name)
}

func TestService_UpdateProfile_PasswordRotation(t *testing.T) {
	repo := newFakeRepository(memberUser())
	service := newTestService(repo, &fakePostLister{}, &fakeObjectStore{})

	user, err := service.UpdateProfile(context.Background(), member, 1, UpdateInput{Password: pointer.To("brand-new-secret")})
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("brand-new-secret", user.PasswordHash))

	// Too-short passwords are rejected before hashing.
	_, err = service.UpdateProfile(context.Background(), member, 1, UpdateInput{Password: pointer.To("short")})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_UpdateProfile_ReplacesAvatar(t *testing.T) {
	stored := memberUser()
	stored.AvatarURL = "https://images.example/old-avatar"
	repo := newFakeRepository(stored)
	objects := &fakeObjectStore{}
	service := newTestService(repo, &fakePostLister{}, objects)

	user, err := service.UpdateProfile(context.Background(), member, 1, UpdateInput{Avatar: []byte("png-bytes")})
	require.NoError(t, err)
	assert.NotEqual(t, "https://images.example/old-avatar", user.AvatarURL)
	assert.Equal(t, 1, objects.uploads)
	assert.Equal(t, []string{"https://images.example/old-avatar"}, objects.deleted)
}

func TestService_Search(t *testing.T) {
	second := &auth.User{ID: 2, Email: "bob@ripple.social", Name: "Bob", RoleID: sec.RoleMember}
	repo := newFakeRepository(memberUser(), second)
	service := newTestService(repo, &fakePostLister{}, &fakeObjectStore{})

	users, total, err := service.Search(context.Background(), "bob", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)
}

func TestService_AssignRole(t *testing.T) {
	repo := newFakeRepository(memberUser())
	service := newTestService(repo, &fakePostLister{}, &fakeObjectStore{})

	user, err := service.AssignRole(context.Background(), admin, 1, int(sec.RoleAdmin))
	require.NoError(t, err)
	assert.True(t, user.RoleID.IsAdmin())

	// Unknown roles are rejected before touching the account.
	_, err = service.AssignRole(context.Background(), admin, 1, 99)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_Delete(t *testing.T) {
	stored := memberUser()
	stored.AvatarURL = "https://images.example/old-avatar"
	repo := newFakeRepository(stored)
	objects := &fakeObjectStore{}
	service := newTestService(repo, &fakePostLister{}, objects)

	// A stranger cannot delete the account.
	err := service.Delete(context.Background(), other, 1)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.Delete(context.Background(), member, 1))
	assert.Empty(t, repo.users)
	assert.Equal(t, []string{"https://images.example/old-avatar"}, objects.deleted)

	err = service.Delete(context.Background(), admin, 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
