// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	requestutil "github.com/taibuivan/ripple/internal/platform/request"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/pkg/pagination"
)

// Handler implements category-related HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Routes returns a [chi.Router] configured with category-specific routes.
//
// # Endpoints
//   - GET    /                             : Public listing of the taxonomy.
//   - GET    /{categoryID}/posts           : Public posts in a category.
//   - POST   /                             : Creates a category (admin).
//   - PATCH  /{categoryID}                 : Updates a category (admin).
//   - DELETE /{categoryID}                 : Deletes a category (admin).
//   - POST   /{categoryID}/posts/{postID}  : Assigns a post (post owner).
//   - DELETE /{categoryID}/posts/{postID}  : Removes an assignment (post owner).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{categoryID}/posts", handler.postsByCategory)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Patch("/{categoryID}", handler.update)
		r.Delete("/{categoryID}", handler.remove)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{categoryID}/posts/{postID}", handler.attachPost)
		r.Delete("/{categoryID}/posts/{postID}", handler.detachPost)
	})

	return router
}

/*
Create adds a category to the taxonomy.

POST /api/v1/categories

Request Body:

	{ "name": "Street Photography", "description": "..." }

Response:
  - 201: Category
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), claims, payload.Name, payload.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
List returns the taxonomy ordered by name.

GET /api/v1/categories

Response:
  - 200: []Category + pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	categories, total, err := handler.categoryService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Update changes a category's name or description.

PATCH /api/v1/categories/{categoryID}

Response:
  - 200: Category
  - 404: ErrNotFound / 409: ErrConflict
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldCategoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Update(request.Context(), claims, id, payload.Name, payload.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
Remove deletes a category and its assignments.

DELETE /api/v1/categories/{categoryID}

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, FieldCategoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.Delete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PostsByCategory returns the non-archived posts in a category, newest first.

GET /api/v1/categories/{categoryID}/posts

Response:
  - 200: []post.Post + pagination meta
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) postsByCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, FieldCategoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	posts, total, err := handler.categoryService.PostsByCategory(request.Context(), id, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
AttachPost assigns a post to a category.

POST /api/v1/categories/{categoryID}/posts/{postID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Not the post owner
  - 404: ErrNotFound / 409: ErrConflict
*/
func (handler *Handler) attachPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categoryID, err := requestutil.ID(request, FieldCategoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.AttachPost(request.Context(), claims, categoryID, postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DetachPost removes a post's assignment to a category.

DELETE /api/v1/categories/{categoryID}/posts/{postID}

Response:
  - 204: No Content
  - 403: ErrForbidden / 404: ErrNotFound
*/
func (handler *Handler) detachPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categoryID, err := requestutil.ID(request, FieldCategoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.ID(request, FieldPostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.DetachPost(request.Context(), claims, categoryID, postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
