// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/googleauth"
	"github.com/taibuivan/ripple/internal/platform/sec"
)

// # Fakes

type fakeUserRepo struct {
	usersByEmail map[string]*User
	nextID       int
	created      []*User
	verified     []string
	resetTokens  map[int]string
	resetExpiry  map[int]time.Time
	passwords    map[int]string
	cleared      []int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: make(map[string]*User),
		nextID:       1,
		resetTokens:  make(map[int]string),
		resetExpiry:  make(map[int]time.Time),
		passwords:    make(map[int]string),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	if _, exists := r.usersByEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}
	user.ID = r.nextID
	r.nextID++
	r.usersByEmail[user.Email] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*User, error) {
	for _, user := range r.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if user, ok := r.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*User, error) {
	for id, stored := range r.resetTokens {
		if stored == token {
			for _, user := range r.usersByEmail {
				if user.ID == id {
					expiry := r.resetExpiry[id]
					user.ResetToken = &stored
					user.ResetTokenExpires = &expiry
					return user, nil
				}
			}
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int, newHash string) error {
	r.passwords[userID] = newHash
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, email string) error {
	user, ok := r.usersByEmail[email]
	if !ok {
		return apperr.NotFound("User")
	}
	if !user.IsVerified {
		user.IsVerified = true
		r.verified = append(r.verified, email)
	}
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID int, token string, expiresAt time.Time) error {
	r.resetTokens[userID] = token
	r.resetExpiry[userID] = expiresAt
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, userID int) error {
	delete(r.resetTokens, userID)
	delete(r.resetExpiry, userID)
	r.cleared = append(r.cleared, userID)
	return nil
}

type fakeRoleRepo struct{}

func (r *fakeRoleRepo) FindByID(_ context.Context, id int) (*Role, error) {
	return &Role{ID: id, Name: "User"}, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*Role, error) {
	if name == sec.DefaultRoleName {
		return &Role{ID: int(sec.RoleMember), Name: sec.DefaultRoleName}, nil
	}
	return nil, apperr.NotFound("Role")
}

func (r *fakeRoleRepo) List(_ context.Context) ([]Role, error) {
	return []Role{{ID: 1, Name: "User"}, {ID: 2, Name: "Admin"}}, nil
}

type fakeNotifier struct {
	verifications []string
	resets        []string
	fail          bool
}

func (n *fakeNotifier) SendVerification(_ context.Context, email, _ string) error {
	if n.fail {
		return apperr.Upstream("Verification email could not be sent", errors.New("smtp down"))
	}
	n.verifications = append(n.verifications, email)
	return nil
}

func (n *fakeNotifier) SendPasswordReset(_ context.Context, email, _ string) error {
	if n.fail {
		return apperr.Upstream("Password reset email could not be sent", errors.New("smtp down"))
	}
	n.resets = append(n.resets, email)
	return nil
}

type fakeIdentityProvider struct {
	profile *googleauth.Profile
	fail    bool
}

func (p *fakeIdentityProvider) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (p *fakeIdentityProvider) Exchange(_ context.Context, _ string) (*googleauth.Profile, error) {
	if p.fail {
		return nil, apperr.Upstream("Google token exchange failed", errors.New("exchange rejected"))
	}
	return p.profile, nil
}

func newTestService(repo *fakeUserRepo, notifier *fakeNotifier, provider *fakeIdentityProvider) *Service {
	tokens := sec.NewTokenService("test-secret", "ripple.social")
	return NewService(repo, &fakeRoleRepo{}, tokens, notifier, provider)
}

// # Sign-Up

func TestService_SignUp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier, &fakeIdentityProvider{})

	user, err := service.SignUp(ctx, SignUpInput{
		Email:    "tai@ripple.social",
		Password: "secret-password",
		Name:     "Tai Bui",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, sec.RoleMember, user.RoleID)
	assert.False(t, user.IsVerified)

	// The plain password must never be stored.
	assert.NotEqual(t, "secret-password", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret-password", user.PasswordHash))

	// A verification email must have gone out.
	assert.Equal(t, []string{"tai@ripple.social"}, notifier.verifications)
}

func TestService_SignUp_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeNotifier{}, &fakeIdentityProvider{})

	_, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)

	_, err = service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "other-password", Name: "Tai 2"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

func TestService_SignUp_NotifierFailureKeepsAccount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{fail: true}
	service := newTestService(repo, notifier, &fakeIdentityProvider{})

	_, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_FAILURE", ae.Code)

	// The account row survives the delivery failure so the user can retry.
	assert.Len(t, repo.created, 1)
}

// # Email Verification

func TestService_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeNotifier{}, &fakeIdentityProvider{})

	_, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)

	tokens := sec.NewTokenService("test-secret", "ripple.social")
	token, err := tokens.GenerateEmailToken("tai@ripple.social", time.Hour)
	require.NoError(t, err)

	require.NoError(t, service.VerifyEmail(ctx, token))
	assert.Equal(t, []string{"tai@ripple.social"}, repo.verified)

	// Verifying again is a no-op, not an error.
	require.NoError(t, service.VerifyEmail(ctx, token))
	assert.Equal(t, []string{"tai@ripple.social"}, repo.verified)
}

func TestService_VerifyEmail_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeUserRepo(), &fakeNotifier{}, &fakeIdentityProvider{})

	tokens := sec.NewTokenService("test-secret", "ripple.social")
	token, err := tokens.GenerateEmailToken("tai@ripple.social", -time.Minute)
	require.NoError(t, err)

	err = service.VerifyEmail(ctx, token)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TOKEN_EXPIRED", ae.Code)
}

func TestService_VerifyEmail_TamperedToken(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeUserRepo(), &fakeNotifier{}, &fakeIdentityProvider{})

	// Signed with a different secret.
	otherTokens := sec.NewTokenService("other-secret", "ripple.social")
	token, err := otherTokens.GenerateEmailToken("tai@ripple.social", time.Hour)
	require.NoError(t, err)

	err = service.VerifyEmail(ctx, token)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Sign-In

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeNotifier{}, &fakeIdentityProvider{})

	user, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)
	user.IsVerified = true

	session, err := service.SignIn(ctx, SignInInput{Email: "tai@ripple.social", Password: "secret-password"})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, user.ID, session.User.ID)

	// The issued token must round-trip through verification with the same claims.
	tokens := sec.NewTokenService("test-secret", "ripple.social")
	claims, err := tokens.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.RoleID, claims.RoleID)
}

func TestService_SignIn_Failures(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeNotifier{}, &fakeIdentityProvider{})

	user, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		setup    func()
		email    string
		password string
		wantCode string
	}{
		{
			name:     "unknown_email",
			email:    "nobody@ripple.social",
			password: "secret-password",
			wantCode: "NOT_FOUND",
		},
		{
			name:     "unverified_account",
			email:    "tai@ripple.social",
			password: "secret-password",
			wantCode: "EMAIL_NOT_VERIFIED",
		},
		{
			// Verification state wins over password correctness.
			name:     "unverified_account_wrong_password",
			email:    "tai@ripple.social",
			password: "wrong-password",
			wantCode: "EMAIL_NOT_VERIFIED",
		},
		{
			name:     "wrong_password",
			setup:    func() { user.IsVerified = true },
			email:    "tai@ripple.social",
			password: "wrong-password",
			wantCode: "INVALID_CREDENTIALS",
		},
		{
			name:     "verified_account_signs_in",
			email:    "tai@ripple.social",
			password: "secret-password",
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			_, err := service.SignIn(ctx, SignInInput{Email: tt.email, Password: tt.password})

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

// # Password Recovery

func TestService_PasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier, &fakeIdentityProvider{})

	user, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)
	user.IsVerified = true

	// Request: persists the token on the row and emails the link.
	require.NoError(t, service.RequestPasswordReset(ctx, "tai@ripple.social"))
	assert.Equal(t, []string{"tai@ripple.social"}, notifier.resets)
	token := repo.resetTokens[user.ID]
	require.NotEmpty(t, token)

	// Complete: rotates the hash and clears the token.
	require.NoError(t, service.ResetPassword(ctx, token, "brand-new-password"))
	assert.True(t, sec.CheckPasswordHash("brand-new-password", repo.passwords[user.ID]))
	assert.Contains(t, repo.cleared, user.ID)

	// Replay: the cleared token no longer resolves to a user.
	err = service.ResetPassword(ctx, token, "yet-another-password")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	notifier := &fakeNotifier{}
	service := newTestService(newFakeUserRepo(), notifier, &fakeIdentityProvider{})

	err := service.RequestPasswordReset(ctx, "nobody@ripple.social")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Empty(t, notifier.resets)
}

func TestService_ResetPassword_RowExpiryWins(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeNotifier{}, &fakeIdentityProvider{})

	user, err := service.SignUp(ctx, SignUpInput{Email: "tai@ripple.social", Password: "secret-password", Name: "Tai"})
	require.NoError(t, err)

	require.NoError(t, service.RequestPasswordReset(ctx, "tai@ripple.social"))
	token := repo.resetTokens[user.ID]

	// The signature is still valid, but the stored expiry has passed.
	repo.resetExpiry[user.ID] = time.Now().Add(-time.Minute)

	err = service.ResetPassword(ctx, token, "brand-new-password")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RESET_TOKEN_EXPIRED", ae.Code)
}

// # Federated Sign-In

func TestService_GoogleCallback_ProvisionsVerifiedAccount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	provider := &fakeIdentityProvider{profile: &googleauth.Profile{
		Email:   "tai@gmail.com",
		Name:    "Tai Bui",
		Picture: "https://lh3.googleusercontent.com/a/avatar",
	}}
	service := newTestService(repo, &fakeNotifier{}, provider)

	session, err := service.GoogleCallback(ctx, "auth-code")
	require.NoError(t, err)
	require.NotNil(t, session.User)

	// First contact auto-provisions a verified account with the profile data.
	assert.True(t, session.User.IsVerified)
	assert.Equal(t, "Tai Bui", session.User.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/avatar", session.User.AvatarURL)

	// A second callback signs in the same account instead of creating another.
	again, err := service.GoogleCallback(ctx, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)
	assert.Len(t, repo.created, 1)
}

func TestService_GoogleCallback_ExchangeFailure(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeUserRepo(), &fakeNotifier{}, &fakeIdentityProvider{fail: true})

	_, err := service.GoogleCallback(ctx, "bad-code")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_FAILURE", ae.Code)
}

func TestService_GoogleAuthURL(t *testing.T) {
	service := newTestService(newFakeUserRepo(), &fakeNotifier{}, &fakeIdentityProvider{})

	url, state := service.GoogleAuthURL()
	assert.NotEmpty(t, state)
	assert.Contains(t, url, state)
}
