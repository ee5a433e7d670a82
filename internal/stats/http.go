// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/middleware"
	"github.com/taibuivan/ripple/internal/platform/respond"
	"github.com/taibuivan/ripple/internal/platform/validate"
	"github.com/taibuivan/ripple/pkg/query"
)

// Handler implements the admin-facing statistics endpoints.
type Handler struct {
	statsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{statsService: service}
}

// Routes returns a [chi.Router] for statistics. All endpoints are admin-only.
//
// # Endpoints
//   - GET  /        : Aggregated activity report.
//   - POST /export  : Renders the report as CSV and uploads it.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.statistics)
		r.Post("/export", handler.export)
	})

	return router
}

/*
Statistics returns the aggregated activity report.

GET /api/v1/statistics?granularity=&user_id=&action=&entity_type=&from=&to=

Description: Buckets the user-action trail by the requested granularity.
The entity_type value accepts a comma-separated list. Date bounds use the
YYYY-MM-DD format, must be provided together, and are interpreted as
inclusive day boundaries.

Response:
  - 200: []Row
  - 400: ErrValidation: Malformed filter values
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) statistics(writer http.ResponseWriter, request *http.Request) {
	input, err := inputFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rows, err := handler.statsService.GetStatistics(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rows)
}

/*
Export renders the report as a CSV document and uploads it.

POST /api/v1/statistics/export?granularity=&user_id=&action=&entity_type=&from=&to=

Response:
  - 201: {url}: Shareable URL of the uploaded document
  - 502: UPSTREAM_FAILURE: Document store rejected the upload
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	input, err := inputFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	url, err := handler.statsService.Export(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{FieldURL: url})
}

// inputFromQuery parses the report parameters from request query values.
func inputFromQuery(request *http.Request) (Input, error) {
	queryValues := request.URL.Query()

	input := Input{
		Granularity: queryValues.Get(FieldGranularity),
		Filter:      audit.Filter{EntityTypes: query.StringSlice(queryValues.Get("entity_type"))},
	}
	if input.Granularity == "" {
		input.Granularity = GranularityTotal
	}

	validator := &validate.Validator{}
	if err := validator.
		OneOf(FieldGranularity, input.Granularity,
			GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityTotal).
		Err(); err != nil {
		return input, err
	}

	if raw := queryValues.Get("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return input, validate.RequiredError("user_id", "Must be a positive integer")
		}
		input.Filter.ActorID = &id
	}

	if raw := queryValues.Get("action"); raw != "" {
		action := audit.Action(raw)
		if !action.Valid() {
			return input, validate.RequiredError("action", "Unknown action kind")
		}
		input.Filter.Action = &action
	}

	rawFrom := queryValues.Get("from")
	rawTo := queryValues.Get("to")

	// The date window is a pair: a lone bound is rejected rather than
	// silently widening the report.
	if (rawFrom == "") != (rawTo == "") {
		return input, validate.RequiredError("from", "Date bounds must be provided together")
	}

	if rawFrom != "" {
		from, err := time.Parse("2006-01-02", rawFrom)
		if err != nil {
			return input, validate.RequiredError("from", "Must be a YYYY-MM-DD date")
		}
		to, err := time.Parse("2006-01-02", rawTo)
		if err != nil {
			return input, validate.RequiredError("to", "Must be a YYYY-MM-DD date")
		}

		// Inclusive day boundary.
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		input.Filter.From = &from
		input.Filter.To = &endOfDay
	}

	return input, nil
}
