// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Handler implements follower-graph HTTP endpoints.
type Handler struct {
	followService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{followService: service}
}

// Routes returns a [chi.Router] configured with follow-specific routes.
//
// # Endpoints
//   - GET    /followers/{userID} : Public listing of a user's followers.
//   - GET    /following/{userID} : Public listing of who a user follows.
//   - POST   /{userID}           : Follows a user.
//   - DELETE /{userID}           : Unfollows a user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/followers/{userID}", handler.followers)
	router.Get("/following/{userID}", handler.following)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{userID}", handler.follow)
		r.Delete("/{userID}", handler.unfollow)
	})

	return router
}

/*
Follow creates a follow edge from the authenticated user to the target.

POST /api/v1/follows/{userID}

Response:
  - 201: Follow
  - 400: ErrValidation: Self-follow
  - 404: ErrNotFound: Unknown user
  - 409: ErrConflict: Already following
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetUserID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	follow, err := handler.followService.Follow(request.Context(), claims, targetUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, follow)
}

/*
Unfollow removes the follow edge from the authenticated user to the target.

DELETE /api/v1/follows/{userID}

Response:
  - 204: No Content
  - 404: ErrNotFound: No such edge
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetUserID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.followService.Unfollow(request.Context(), claims, targetUserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Followers returns the users following the given user, newest first.

GET /api/v1/follows/followers/{userID}

Response:
  - 200: []Edge + pagination meta
*/
func (handler *Handler) followers(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	edges, total, err := handler.followService.Followers(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, edges, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Following returns the users the given user follows, newest first.

GET /api/v1/follows/following/{userID}

Response:
  - 200: []Edge + pagination meta
*/
func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	edges, total, err := handler.followService.Following(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, edges, pagination.NewMeta(params.Page, params.Limit, total))
}
