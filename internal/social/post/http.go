// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/pkg/convert"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/pointer"
	"github.com/taibuivan/ripple/pkg/query"
)

// Handler implements post-related HTTP endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] configured with post-specific routes.
//
// # Endpoints
//   - GET    /                    : Role-aware feed listing.
//   - POST   /                    : Publishes a new post.
//   - GET    /{postID}            : Public single-post read.
//   - PATCH  /{postID}            : Updates a post (owner or admin).
//   - PATCH  /{postID}/archive    : Archives a post.
//   - PATCH  /{postID}/unarchive  : Restores an archived post.
//   - DELETE /{postID}            : Deletes a post.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint. Claims are still extracted when present so the
	// retrieval is attributed in the trail.
	router.Get("/{postID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Patch("/{postID}", handler.update)
		r.Patch("/{postID}/archive", handler.archive)
		r.Patch("/{postID}/unarchive", handler.unarchive)
		r.Delete("/{postID}", handler.remove)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`

	// Image is a base64-encoded payload, matching what browser file
	// readers produce.
	Image string `json:"image,omitempty"`
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   string  `json:"image,omitempty"`
}

/*
Create publishes a new post.

POST /api/v1/posts

Request:
  - Body: createRequest (Title, Content, optional base64 Image)

Response:
  - 201: Post: Created post
  - 400: ErrInvalidJSON: Bad input or malformed image encoding
  - 502: UPSTREAM_FAILURE: Image hosting failed
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := decodeImage(input.Image)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Create(request.Context(), claims, CreateInput{
		Title:   input.Title,
		Content: input.Content,
		Image:   image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
Get returns a single post.

GET /api/v1/posts/{postID}

Response:
  - 200: Post
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Get(request.Context(), requestutil.Claims(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
List returns the role-aware post feed.

GET /api/v1/posts?user_id=&archived=&categories=&sort=&order=&page=&limit=

Description: Admins default to every author's non-archived posts; members
default to their own posts. An explicit archived filter wins where the
visibility policy allows it.

Response:
  - 200: []Post + pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryValues := request.URL.Query()

	input := ListInput{
		Sort:       queryValues.Get(FieldSort),
		Descending: queryValues.Get(FieldOrder) != "asc",
	}

	if raw := queryValues.Get("user_id"); raw != "" {
		if id := convert.ToInt(raw); id > 0 {
			input.UserID = &id
		}
	}
	if raw := queryValues.Get("archived"); raw != "" {
		input.Archived = pointer.To(convert.ToBool(raw))
	}
	if raw := queryValues.Get("categories"); raw != "" {
		input.CategoryIDs = query.IntSlice(query.StringSlice(raw))
	}

	params := pagination.FromRequest(request)

	posts, total, err := handler.postService.List(request.Context(), claims, input, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update modifies an existing post.

PATCH /api/v1/posts/{postID}

Request:
  - Body: updateRequest (optional Title, Content, base64 Image)

Response:
  - 200: Post: Updated post
  - 403: ErrForbidden: Caller is neither owner nor admin
  - 404: ErrNotFound: Unknown post
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := decodeImage(input.Image)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Update(request.Context(), claims, id, UpdateInput{
		Title:   input.Title,
		Content: input.Content,
		Image:   image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
Archive hides a post from default feeds.

PATCH /api/v1/posts/{postID}/archive

Response:
  - 204: No Content
  - 403: ErrForbidden / 404: ErrNotFound
*/
func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	handler.setArchived(writer, request, true)
}

/*
Unarchive restores an archived post to default feeds.

PATCH /api/v1/posts/{postID}/unarchive

Response:
  - 204: No Content
  - 403: ErrForbidden / 404: ErrNotFound
*/
func (handler *Handler) unarchive(writer http.ResponseWriter, request *http.Request) {
	handler.setArchived(writer, request, false)
}

func (handler *Handler) setArchived(writer http.ResponseWriter, request *http.Request, archived bool) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if archived {
		err = handler.postService.Archive(request.Context(), claims, id)
	} else {
		err = handler.postService.Unarchive(request.Context(), claims, id)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Remove permanently deletes a post.

DELETE /api/v1/posts/{postID}

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

	id, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodeImage decodes an optional base64 image payload.
func decodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, validate.RequiredError(FieldImage, "Must be valid base64 data")
	}
	return image, nil
}
