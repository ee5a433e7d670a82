// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Handler implements comment-related HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] configured with comment-specific routes.
//
// # Endpoints
//   - GET    /post/{postID}  : Public listing of a post's comments.
//   - POST   /post/{postID}  : Adds a comment to a post.
//   - PATCH  /{commentID}    : Edits a comment (owner or admin).
//   - DELETE /{commentID}    : Deletes a comment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/post/{postID}", handler.listByPost)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/post/{postID}", handler.create)
		r.Patch("/{commentID}", handler.update)
		r.Delete("/{commentID}", handler.remove)
	})

	return router
}

type commentRequest struct {
	Content string `json:"content"`
}

/*
Create adds a comment to a post.

POST /api/v1/comments/post/{postID}

Response:
  - 201: Comment
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).MaxLen(FieldContent, input.Content, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), claims, postID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
ListByPost returns a post's comments, oldest first.

GET /api/v1/comments/post/{postID}

Response:
  - 200: []Comment + pagination meta
*/
func (handler *Handler) listByPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.commentService.ListByPost(request.Context(), postID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update edits a comment's body.

PATCH /api/v1/comments/{commentID}

Response:
  - 200: Comment
  - 403: ErrForbidden / 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).MaxLen(FieldContent, input.Content, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), claims, id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
Remove deletes a comment.

DELETE /api/v1/comments/{commentID}

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

	id, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
