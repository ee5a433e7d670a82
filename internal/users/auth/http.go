// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/apperr"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Sign-up, Sign-in, Google OAuth2, Password Reset callbacks).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /sign-up                  : Creates a new account.
//   - POST /sign-in                  : Authenticates and returns a JWT.
//   - GET  /verify-email/{token}     : Confirms email ownership.
//   - POST /request-password-reset   : Starts the recovery flow.
//   - PATCH /reset-password          : Completes the recovery flow.
//   - POST /google                   : Returns the Google consent URL.
//   - GET  /google/redirect          : OAuth2 callback; issues a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up", handler.signUp)
	router.Post("/sign-in", handler.signIn)
	router.Get("/verify-email/{token}", handler.verifyEmail)
	router.Post("/request-password-reset", handler.requestPasswordReset)
	router.Patch("/reset-password", handler.resetPassword)
	router.Post("/google", handler.googleAuthURL)
	router.Get("/google/redirect", handler.googleCallback)

	return router
}

// # Request Payloads

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type requestPasswordResetRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

/*
SignUp handles the creation of a new user account.

POST /api/v1/auth/sign-up

Description: Validates input, checks for identity conflicts, persists the
account, and emails a verification link.

Request:
  - Body: signUpRequest (Email, Password, Name)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already exists
  - 502: UPSTREAM_FAILURE: Verification email could not be delivered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
SignIn authenticates a user and establishes a session.

POST /api/v1/auth/sign-in

Description: Verifies credentials and returns a signed session token.

Request:
  - Body: signInRequest (Email, Password)

Response:
  - 200: Session: Access token and User profile
  - 401: INVALID_CREDENTIALS: Wrong password
  - 403: EMAIL_NOT_VERIFIED: Account pending email verification
  - 404: ErrNotFound: No account with this email
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignIn(request.Context(), SignInInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   session.ExpiresIn / time.Second,
		FieldUser:        session.User,
	})
}

/*
VerifyEmail confirms a user's email ownership.

GET /api/v1/auth/verify-email/{token}

Description: Validates the emailed verification token and marks the account
as verified. The token travels in the path so the emailed link works without
a frontend intermediary.

Response:
  - 200: Success: Email verified
  - 401: TOKEN_EXPIRED / UNAUTHORIZED: Stale or tampered token
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, FieldToken)
	if token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "is required"))
		return
	}

	if err := handler.authService.VerifyEmail(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Email verified successfully",
	})
}

/*
RequestPasswordReset initiates the password recovery flow.

POST /api/v1/auth/request-password-reset

Description: Emails a password reset link for the account.

Request:
  - Body: requestPasswordResetRequest (Email)

Response:
  - 200: Success: Reset link sent
  - 400: ErrInvalidJSON: Invalid email format
  - 404: ErrNotFound: No account with this email
  - 502: UPSTREAM_FAILURE: Reset email could not be delivered
*/
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var input requestPasswordResetRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "A reset link has been sent",
	})
}

/*
ResetPassword completes the password recovery flow.

PATCH /api/v1/auth/reset-password

Description: Validates the reset token and updates the user's password.

Request:
  - Body: resetPasswordRequest (Token, NewPassword, ConfirmPassword)

Response:
  - 200: Success: Password updated
  - 400: RESET_TOKEN_EXPIRED: Stale reset link
  - 401: ErrUnauthorized: Unknown or tampered token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, 8).
		Custom(FieldConfirmPassword, input.NewPassword != input.ConfirmPassword,
			"Passwords do not match")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

/*
GoogleAuthURL starts the federated sign-in flow.

POST /api/v1/auth/google

Description: Returns the Google consent-screen URL and the anti-forgery state
the frontend must persist for the callback.

Response:
  - 200: AuthURL: Consent URL and state
*/
func (handler *Handler) googleAuthURL(writer http.ResponseWriter, request *http.Request) {
	url, state := handler.authService.GoogleAuthURL()

	respond.OK(writer, map[string]string{
		FieldAuthURL: url,
		"state":      state,
	})
}

/*
GoogleCallback completes the federated sign-in flow.

GET /api/v1/auth/google/redirect?code=...

Description: Exchanges the authorization code for an identity profile and
issues a session, auto-provisioning a verified account on first contact.

Response:
  - 200: Session: Access token and User profile
  - 400: ErrValidation: Missing authorization code
  - 502: UPSTREAM_FAILURE: Google exchange failed
*/
func (handler *Handler) googleCallback(writer http.ResponseWriter, request *http.Request) {
	code := request.URL.Query().Get(FieldCode)
	if code == "" {
		respond.Error(writer, request, apperr.ValidationError("Missing authorization code"))
		return
	}

	session, err := handler.authService.GoogleCallback(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   session.ExpiresIn / time.Second,
		FieldUser:        session.User,
	})
}
