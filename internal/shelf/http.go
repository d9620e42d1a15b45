// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package shelf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

// Handler exposes shelves over HTTP. Everything requires authentication;
// shelves are private to their owner.
type Handler struct {
	service *Service
}

// NewHandler constructs a shelf [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the shelf endpoints.
//
// # Endpoints
//   - GET    /                     : Own shelves with book counts.
//   - POST   /                     : Create a shelf.
//   - GET    /{id}                 : Single shelf with books.
//   - PATCH  /{id}                 : Rename a shelf.
//   - DELETE /{id}                 : Delete a shelf.
//   - POST   /{id}/books           : Add a book.
//   - DELETE /{id}/books/{bookID}  : Remove a book.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listShelves)
	router.Post("/", handler.createShelf)
	router.Get("/{id}", handler.getShelf)
	router.Patch("/{id}", handler.renameShelf)
	router.Delete("/{id}", handler.deleteShelf)
	router.Post("/{id}/books", handler.addBook)
	router.Delete("/{id}/books/{bookID}", handler.removeBook)

	return router
}

type shelfNameRequest struct {
	Name string `json:"name"`
}

type shelfBookRequest struct {
	BookID string `json:"book_id"`
}

// listShelves handles GET /api/v1/shelves.
func (handler *Handler) listShelves(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelves, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shelves)
}

// createShelf handles POST /api/v1/shelves.
func (handler *Handler) createShelf(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload shelfNameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelf, err := handler.service.Create(request.Context(), userID, payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, shelf)
}

// getShelf handles GET /api/v1/shelves/{id}.
func (handler *Handler) getShelf(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelf, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shelf)
}

// renameShelf handles PATCH /api/v1/shelves/{id}.
func (handler *Handler) renameShelf(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload shelfNameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelf, err := handler.service.Rename(request.Context(), userID, requestutil.ID(request, "id"), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shelf)
}

// deleteShelf handles DELETE /api/v1/shelves/{id}.
func (handler *Handler) deleteShelf(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// addBook handles POST /api/v1/shelves/{id}/books.
func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload shelfBookRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddBook(request.Context(), userID, requestutil.ID(request, "id"), payload.BookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// removeBook handles DELETE /api/v1/shelves/{id}/books/{bookID}.
func (handler *Handler) removeBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBook(request.Context(), userID, requestutil.ID(request, "id"), requestutil.ID(request, "bookID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
