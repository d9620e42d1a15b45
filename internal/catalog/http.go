// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the catalog endpoints.
//
// # Endpoints
//   - GET  /               : Paginated catalog listing.
//   - POST /resolve        : Create-or-reuse a canonical book.
//   - GET  /genres         : All genres.
//   - GET  /{id}           : Single book by ID.
//   - GET  /by-slug/{slug} : Single book by slug.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Post("/resolve", handler.resolveBook)
	router.Get("/genres", handler.listGenres)
	router.Get("/{id}", handler.getBook)
	router.Get("/by-slug/{slug}", handler.getBookBySlug)

	return router
}

// listBooks handles GET /api/v1/books.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	books, total, err := handler.service.ListBooks(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(params.Page, params.Limit, total))
}

// resolveBook handles POST /api/v1/books/resolve.
//
// Accepts a book descriptor (search result or manual entry) and returns the
// canonical book, creating it on first sight.
func (handler *Handler) resolveBook(writer http.ResponseWriter, request *http.Request) {
	var descriptor BookDescriptor

	if err := requestutil.DecodeJSON(request, &descriptor); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	bookID, err := handler.service.Resolve(request.Context(), descriptor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// getBook handles GET /api/v1/books/{id}.
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// getBookBySlug handles GET /api/v1/books/by-slug/{slug}.
func (handler *Handler) getBookBySlug(writer http.ResponseWriter, request *http.Request) {
	bookSlug := chi.URLParam(request, "slug")

	book, err := handler.service.GetBookBySlug(request.Context(), bookSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// listGenres handles GET /api/v1/books/genres.
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}
