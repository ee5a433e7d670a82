// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/platform/middleware"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/pkg/pagination"
	"github.com/taibuivan/ripple/pkg/query"
)

// Handler implements the admin-facing trail endpoints.
type Handler struct {
	repository Repository
}

// NewHandler constructs a new [Handler] over the trail repository.
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// Routes returns a [chi.Router] for the trail. All endpoints are admin-only.
//
// # Endpoints
//   - GET / : Filtered, paginated action listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
	})

	return router
}

/*
List returns a filtered page of the user-action trail, newest first.

GET /api/v1/actions?user_id=&action=&entity_type=&from=&to=&page=&limit=

Description: Admin-only view of recorded activity. The entity_type value
accepts a comma-separated list. Date bounds use the YYYY-MM-DD format and
are interpreted as inclusive day boundaries.

Response:
  - 200: []Entry + pagination meta
  - 400: ErrValidation: Malformed filter values
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter, err := filterFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	entries, total, err := handler.repository.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

// filterFromQuery parses the trail filter from request query parameters.
func filterFromQuery(request *http.Request) (Filter, error) {
	queryValues := request.URL.Query()
	filter := Filter{EntityTypes: query.StringSlice(queryValues.Get("entity_type"))}

	if raw := queryValues.Get("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return filter, validate.RequiredError("user_id", "Must be a positive integer")
		}
		filter.ActorID = &id
	}

	if raw := queryValues.Get("action"); raw != "" {
		action := Action(raw)
		if !action.Valid() {
			return filter, validate.RequiredError("action", "Unknown action kind")
		}
		filter.Action = &action
	}

	if raw := queryValues.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, validate.RequiredError("from", "Must be a YYYY-MM-DD date")
		}
		filter.From = &from
	}

	if raw := queryValues.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, validate.RequiredError("to", "Must be a YYYY-MM-DD date")
		}
		// Inclusive day boundary.
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}

	return filter, nil
}
