// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Handler implements like-related HTTP endpoints.
type Handler struct {
	likeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{likeService: service}
}

// Routes returns a [chi.Router] configured with like-specific routes.
//
// # Endpoints
//   - GET    /{ref}/{refID}  : Public listing of a target's likes.
//   - POST   /{ref}/{refID}  : Likes a post or comment.
//   - DELETE /{likeID}       : Removes a like.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{ref}/{refID}", handler.listByTarget)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{ref}/{refID}", handler.create)
		r.Delete("/{likeID}", handler.remove)
	})

	return router
}

/*
Create likes a post or comment.

POST /api/v1/likes/{ref}/{refID}   with ref in {post, comment}

Response:
  - 201: Like
  - 404: ErrNotFound: Unknown target
  - 409: ErrConflict: Already liked
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.ID(request, FieldRefID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	like, err := handler.likeService.Create(request.Context(), claims, requestutil.Param(request, FieldRef), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, like)
}

/*
ListByTarget returns the likes on a post or comment, newest first.

GET /api/v1/likes/{ref}/{refID}

Response:
  - 200: []Like + pagination meta
*/
func (handler *Handler) listByTarget(writer http.ResponseWriter, request *http.Request) {
	targetID, err := requestutil.ID(request, FieldRefID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	likes, total, err := handler.likeService.ListByTarget(request.Context(), requestutil.Param(request, FieldRef), targetID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, likes, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Remove deletes a like.

DELETE /api/v1/likes/{likeID}

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

	id, err := requestutil.ID(request, FieldLikeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.likeService.Delete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
