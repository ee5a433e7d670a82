// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	"github.com/taibuivan/ripple/internal/platform/constants"
	"github.com/taibuivan/ripple/internal/platform/googleauth"
	"github.com/taibuivan/ripple/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying security tokens.
type TokenProvider interface {
	// GenerateSessionToken creates a signed JWT carrying the full identity claim set.
	GenerateSessionToken(userID int, roleID sec.RoleID, email string, timeToLive time.Duration) (string, error)

	// GenerateEmailToken creates a single-purpose token carrying only an email claim.
	GenerateEmailToken(email string, timeToLive time.Duration) (string, error)

	// VerifyToken checks a JWT string and returns its claims.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Notifier defines the contract for delivering account lifecycle emails.
type Notifier interface {
	// SendVerification delivers the email verification link.
	SendVerification(context context.Context, email, token string) error

	// SendPasswordReset delivers the password recovery link.
	SendPasswordReset(context context.Context, email, token string) error
}

// IdentityProvider defines the contract for the federated Google sign-in flow.
type IdentityProvider interface {
	// AuthURL returns the consent-screen URL for the given anti-forgery state.
	AuthURL(state string) string

	// Exchange trades an authorization code for the user's identity profile.
	Exchange(context context.Context, code string) (*googleauth.Profile, error)
}

// Sentinel errors for the authentication flows. Distinct codes let clients
// tell a wrong password apart from an unverified account or a stale reset link.
var (
	ErrInvalidCredentials = &apperr.AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Invalid login credentials",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrEmailNotVerified = &apperr.AppError{
		Code:       "EMAIL_NOT_VERIFIED",
		Message:    "Email address has not been verified",
		HTTPStatus: http.StatusForbidden,
	}

	ErrResetTokenExpired = &apperr.AppError{
		Code:       "RESET_TOKEN_EXPIRED",
		Message:    "Password reset token has expired",
		HTTPStatus: http.StatusBadRequest,
	}
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository   UserRepository
	roleRepository   RoleRepository
	tokenProvider    TokenProvider
	notifier         Notifier
	identityProvider IdentityProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	tokenProv TokenProvider,
	notifier Notifier,
	identityProv IdentityProvider,
) *Service {
	return &Service{
		userRepository:   userRepo,
		roleRepository:   roleRepo,
		tokenProvider:    tokenProv,
		notifier:         notifier,
		identityProvider: identityProv,
	}
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

/*
SignUp validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with the default role, then issues an email
verification token. The account stays unverified until the link is followed.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email exists), Upstream (if the email cannot be
    delivered; the account row is kept), or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Resolve the default role by name so the seed data stays the source of truth.
	role, err := service.roleRepository.FindByName(context, sec.DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_default_role_missing: %w", err)
	}

	user := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		RoleID:       sec.RoleID(role.ID),
		IsVerified:   false,
	}

	// Persist the user to the database. The unique index on email closes the
	// race between the lookup above and this insert.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Issue the verification token and deliver the link. A delivery failure is
	// surfaced to the caller, but the account row is intentionally kept so the
	// user can request a fresh link instead of re-registering.
	token, err := service.tokenProvider.GenerateEmailToken(user.Email, constants.VerificationTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_verification_token_failed: %w", err)
	}

	if err := service.notifier.SendVerification(context, user.Email, token); err != nil {
		return nil, err
	}

	return user, nil
}

/*
VerifyEmail confirms a user's email address using a signed token.

Description: Validates the email token and flips the account to verified.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: TOKEN_EXPIRED, UNAUTHORIZED (tampered token), or storage errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {
	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		return err
	}

	if err := service.userRepository.MarkVerified(context, claims.Email); err != nil {
		return err
	}

	return nil
}

// # Authentication Flow

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Email    string
	Password string
}

// Session represents a successfully established user session.
type Session struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
SignIn validates user credentials and issues a session token.

Description: Rejects accounts that have not completed email verification
before the password is even compared, then verifies identity with a
constant-time password comparison. The three failure kinds stay distinct
so the transport layer can decide what to mask.

Parameters:
  - context: context.Context
  - input: SignInInput

Returns:
  - *Session: Transport-ready session token and user profile
  - error: NOT_FOUND (unknown email), EMAIL_NOT_VERIFIED,
    INVALID_CREDENTIALS, or internal failures
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}

	// Verification state is reported before the password is compared, so an
	// unverified account gets the same answer regardless of the credentials.
	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := service.tokenProvider.GenerateSessionToken(
		user.ID, user.RoleID, user.Email, constants.SessionTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: accessToken,
		ExpiresIn:   constants.SessionTokenTTL,
		User:        user,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Issues a signed reset token, persists it on the user row with an
independent expiry, and emails the recovery link.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: NotFound (unknown email), Upstream (delivery failure), or
    storage errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return err
	}

	token, err := service.tokenProvider.GenerateEmailToken(user.Email, constants.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// The row-level expiry is authoritative: issuing a new token or completing
	// a reset invalidates older links even though their signatures still verify.
	expiresAt := time.Now().Add(constants.ResetTokenTTL)
	if err := service.userRepository.SetResetToken(context, user.ID, token, expiresAt); err != nil {
		return err
	}

	if err := service.notifier.SendPasswordReset(context, user.Email, token); err != nil {
		return err
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token signature, matches it against the stored row
token, checks the row-level expiry, and rotates the password hash.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: RESET_TOKEN_EXPIRED, UNAUTHORIZED (unknown or tampered token),
    or storage errors
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	if _, err := service.tokenProvider.VerifyToken(token); err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return ErrResetTokenExpired
		}
		return err
	}

	// The token must still be the one stored on the row. A completed reset or
	// a newer request clears/replaces it, which invalidates this link.
	user, err := service.userRepository.FindByResetToken(context, token)
	if err != nil {
		return apperr.Unauthorized("Invalid or already used reset token")
	}

	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
		return ErrResetTokenExpired
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return err
	}

	// Single-use token: clear it so the same link cannot be replayed.
	_ = service.userRepository.ClearResetToken(context, user.ID)

	return nil
}

// # Federated Sign-In

/*
GoogleAuthURL starts the Google OAuth2 authorization-code flow.

Description: Builds the consent-screen URL with a fresh anti-forgery state.

Returns:
  - string: The URL to redirect the user to
  - string: The generated state value
*/
func (service *Service) GoogleAuthURL() (string, string) {
	state := uuid.NewString()
	return service.identityProvider.AuthURL(state), state
}

/*
GoogleCallback completes the Google OAuth2 flow.

Description: Exchanges the authorization code for an identity profile, then
signs the user in, auto-provisioning a verified account on first contact.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - *Session: Transport-ready session token and user profile
  - error: Upstream (provider failure) or storage errors
*/
func (service *Service) GoogleCallback(context context.Context, code string) (*Session, error) {
	profile, err := service.identityProvider.Exchange(context, code)
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, profile.Email)
	if err != nil {
		user, err = service.provisionFederatedUser(context, profile)
		if err != nil {
			return nil, err
		}
	}

	accessToken, err := service.tokenProvider.GenerateSessionToken(
		user.ID, user.RoleID, user.Email, constants.SessionTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_google_token_failed: %w", err)
	}

	return &Session{
		AccessToken: accessToken,
		ExpiresIn:   constants.SessionTokenTTL,
		User:        user,
	}, nil
}

// provisionFederatedUser creates a verified account from a Google profile.
// The password is an unguessable random value; federated users who want
// credential sign-in must go through the password reset flow first.
func (service *Service) provisionFederatedUser(context context.Context, profile *googleauth.Profile) (*User, error) {
	hashedPassword, err := sec.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("auth_service_federated_hash_failed: %w", err)
	}

	role, err := service.roleRepository.FindByName(context, sec.DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_default_role_missing: %w", err)
	}

	user := &User{
		Email:        profile.Email,
		PasswordHash: hashedPassword,
		Name:         profile.Name,
		AvatarURL:    profile.Picture,
		RoleID:       sec.RoleID(role.ID),
		// Google has already verified ownership of the address.
		IsVerified: true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}
