// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Handler implements account-related HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET    /{userID}       : Public profile with the user's latest posts.
//   - GET    /               : Searches accounts by name or email.
//   - PATCH  /{userID}       : Updates a profile (owner or admin).
//   - DELETE /{userID}       : Deletes an account (owner or admin).
//   - PATCH  /{userID}/role  : Assigns a role (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{userID}", handler.profile)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.search)
		r.Patch("/{userID}", handler.update)
		r.Delete("/{userID}", handler.remove)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Patch("/{userID}/role", handler.assignRole)
	})

	return router
}

// # Request Payloads

type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`

	// Avatar is a base64-encoded payload, matching what browser file
	// readers produce.
	Avatar string `json:"avatar,omitempty"`
}

type assignRoleRequest struct {
	RoleID int `json:"role_id"`
}

/*
Profile returns a user's public profile and latest posts.

GET /api/v1/users/{userID}?page=&limit=

Response:
  - 200: Profile + pagination meta (over the post feed)
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	profile, total, err := handler.accountService.GetProfile(request.Context(), requestutil.Claims(request), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profile, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Search returns accounts matching a term on name or email.

GET /api/v1/users?search=&page=&limit=

Response:
  - 200: []auth.User + pagination meta
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	term := request.URL.Query().Get(FieldSearch)
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.Search(request.Context(), term, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update modifies an account's profile.

PATCH /api/v1/users/{userID}

Request:
  - Body: updateRequest (optional Name, Email, Password, base64 Avatar)

Response:
  - 200: auth.User: Updated account
  - 403: ErrForbidden: Caller is neither owner nor admin
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	avatar, err := decodeAvatar(input.Avatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims, userID, UpdateInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Avatar:   avatar,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
AssignRole changes a user's role.

PATCH /api/v1/users/{userID}/role

Request:
  - Body: assignRoleRequest (RoleID)

Response:
  - 200: auth.User: Account with its new role
  - 404: ErrNotFound: Unknown user or role
*/
func (handler *Handler) assignRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Positive(FieldRoleID, input.RoleID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.AssignRole(request.Context(), claims, userID, input.RoleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Remove permanently deletes an account.

DELETE /api/v1/users/{userID}

Response:
  - 204: No Content
  - 403: ErrForbidden / 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), claims, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodeAvatar decodes an optional base64 avatar payload.
func decodeAvatar(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, validate.RequiredError(FieldAvatar, "Must be valid base64 data")
	}
	return image, nil
}
