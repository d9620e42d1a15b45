// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

// Handler exposes profiles over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a profile [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the profile endpoints.
//
// # Endpoints
//   - GET   /me             : Own full account (authenticated).
//   - PATCH /me             : Update own profile (authenticated).
//   - GET   /me/sessions    : Own active sessions (authenticated).
//   - GET   /{username}     : Public profile (anonymous OK).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/me", handler.getOwn)
		protected.Patch("/me", handler.updateOwn)
		protected.Get("/me/sessions", handler.listSessions)
	})

	router.Get("/{username}", handler.getPublic)

	return router
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

// getOwn handles GET /api/v1/profiles/me.
func (handler *Handler) getOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetOwn(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateOwn handles PATCH /api/v1/profiles/me.
func (handler *Handler) updateOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), userID, UpdateInput{
		DisplayName: payload.DisplayName,
		AvatarURL:   payload.AvatarURL,
		Bio:         payload.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// listSessions handles GET /api/v1/profiles/me/sessions.
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.service.Sessions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

// getPublic handles GET /api/v1/profiles/{username}.
func (handler *Handler) getPublic(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	publicProfile, err := handler.service.GetPublic(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publicProfile)
}
