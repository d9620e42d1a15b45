// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package goal

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

// Handler exposes reading goals over HTTP. Goals are private to their owner.
type Handler struct {
	service *Service
}

// NewHandler constructs a goal [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the goal endpoints.
//
// # Endpoints
//   - GET    /        : All goals with derived progress.
//   - PUT    /        : Create or update a year's goal.
//   - GET    /{year}  : Single year's goal.
//   - DELETE /{year}  : Remove a year's goal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listGoals)
	router.Put("/", handler.setGoal)
	router.Get("/{year}", handler.getGoal)
	router.Delete("/{year}", handler.deleteGoal)

	return router
}

type setGoalRequest struct {
	Year   int `json:"year"`
	Target int `json:"target"`
}

// listGoals handles GET /api/v1/goals.
func (handler *Handler) listGoals(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	goals, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, goals)
}

// setGoal handles PUT /api/v1/goals.
func (handler *Handler) setGoal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload setGoalRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	goal, err := handler.service.Set(request.Context(), userID, payload.Year, payload.Target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, goal)
}

// getGoal handles GET /api/v1/goals/{year}.
func (handler *Handler) getGoal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := yearParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	goal, err := handler.service.Get(request.Context(), userID, year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, goal)
}

// deleteGoal handles DELETE /api/v1/goals/{year}.
func (handler *Handler) deleteGoal(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := yearParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, year); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// yearParam parses the {year} URL segment.
func yearParam(request *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(request, "year"))
	if err != nil {
		return 0, validate.RequiredError(FieldYear, "Must be a four-digit year")
	}
	return year, nil
}
