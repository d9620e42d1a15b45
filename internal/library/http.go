// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// Handler exposes the user library over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the library endpoints.
//
// All mutations require authentication. Cross-user listings go through
// /users/{userID}/library at the server level and land in listForUser here.
//
// # Endpoints
//   - GET    /                 : Own library (all entries).
//   - POST   /                 : Add a book to the library.
//   - GET    /{id}             : Single entry.
//   - DELETE /{id}             : Remove an entry.
//   - PATCH  /{id}/status      : Transition reading status.
//   - PATCH  /{id}/progress    : Update reading progress.
//   - PATCH  /{id}/rating      : Set or clear the rating.
//   - PATCH  /{id}/notes       : Replace private notes.
//   - PATCH  /{id}/visibility  : Toggle public/private.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listOwn)
	router.Post("/", handler.createEntry)
	router.Get("/{id}", handler.getEntry)
	router.Delete("/{id}", handler.deleteEntry)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Patch("/{id}/progress", handler.updateProgress)
	router.Patch("/{id}/rating", handler.updateRating)
	router.Patch("/{id}/notes", handler.updateNotes)
	router.Patch("/{id}/visibility", handler.updateVisibility)

	return router
}

// # Request Payloads

type createEntryRequest struct {
	BookID   string                  `json:"book_id"`
	Book     *catalog.BookDescriptor `json:"book"`
	Status   string                  `json:"status"`
	Progress *int                    `json:"progress"`
	Rating   *float64                `json:"rating"`
	Notes    string                  `json:"notes"`
	IsPublic *bool                   `json:"is_public"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateProgressRequest struct {
	Progress int `json:"progress"`
}

type updateRatingRequest struct {
	Rating *float64 `json:"rating"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type updateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// # Handlers

// createEntry handles POST /api/v1/library.
func (handler *Handler) createEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createEntryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.CreateEntry(request.Context(), userID, CreateEntryInput{
		BookID:     payload.BookID,
		Descriptor: payload.Book,
		Status:     payload.Status,
		Progress:   payload.Progress,
		Rating:     payload.Rating,
		Notes:      payload.Notes,
		IsPublic:   payload.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// listOwn handles GET /api/v1/library.
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.list(writer, request, userID, userID)
}

// ListForUser handles GET /api/v1/users/{userID}/library.
//
// Mounted at the server level outside this package's subrouter because the
// owner ID comes from the path, not the session. Anonymous access is allowed;
// the visibility filter handles the rest.
func (handler *Handler) ListForUser(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.ID(request, "userID")

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	handler.list(writer, request, viewerID, ownerID)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, viewerID, ownerID string) {
	params := pagination.FromRequest(request)

	var status *Status
	if raw := request.URL.Query().Get(FieldStatus); raw != "" {
		parsed, err := ParseStatus(raw)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		status = &parsed
	}

	entries, total, err := handler.service.ListForViewer(request.Context(), viewerID, ownerID, status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

// getEntry handles GET /api/v1/library/{id}.
func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.GetEntry(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// deleteEntry handles DELETE /api/v1/library/{id}.
func (handler *Handler) deleteEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveEntry(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// updateStatus handles PATCH /api/v1/library/{id}/status.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, func(userID, entryID string) (*Entry, error) {
		var payload updateStatusRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return nil, err
		}
		return handler.service.UpdateStatus(request.Context(), userID, entryID, payload.Status)
	})
}

// updateProgress handles PATCH /api/v1/library/{id}/progress.
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, func(userID, entryID string) (*Entry, error) {
		var payload updateProgressRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return nil, err
		}
		return handler.service.UpdateProgress(request.Context(), userID, entryID, payload.Progress)
	})
}

// updateRating handles PATCH /api/v1/library/{id}/rating.
func (handler *Handler) updateRating(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, func(userID, entryID string) (*Entry, error) {
		var payload updateRatingRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return nil, err
		}
		return handler.service.UpdateRating(request.Context(), userID, entryID, payload.Rating)
	})
}

// updateNotes handles PATCH /api/v1/library/{id}/notes.
func (handler *Handler) updateNotes(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, func(userID, entryID string) (*Entry, error) {
		var payload updateNotesRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return nil, err
		}
		return handler.service.UpdateNotes(request.Context(), userID, entryID, payload.Notes)
	})
}

// updateVisibility handles PATCH /api/v1/library/{id}/visibility.
func (handler *Handler) updateVisibility(writer http.ResponseWriter, request *http.Request) {
	handler.mutate(writer, request, func(userID, entryID string) (*Entry, error) {
		var payload updateVisibilityRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			return nil, err
		}
		return handler.service.UpdateVisibility(request.Context(), userID, entryID, payload.IsPublic)
	})
}

// mutate factors the shared auth-decode-respond shape of the PATCH handlers.
func (handler *Handler) mutate(writer http.ResponseWriter, request *http.Request, operation func(userID, entryID string) (*Entry, error)) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := operation(userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}
