// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package metadata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/convert"
)

// Default and maximum result counts for provider searches.
const (
	defaultSearchLimit = 10
	maxSearchLimit     = 40
)

// Handler exposes metadata search over HTTP.
type Handler struct {
	provider *CachedClient
}

// NewHandler constructs a metadata [Handler].
func NewHandler(provider *CachedClient) *Handler {
	return &Handler{provider: provider}
}

// Routes returns a [chi.Router] with the metadata endpoints.
//
// # Endpoints
//   - GET /search        : Free-text provider search.
//   - GET /volumes/{id}  : Single volume lookup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)
	router.Get("/volumes/{id}", handler.volume)

	return router
}

// search handles GET /api/v1/metadata/search?q=...&limit=...
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	if query == "" {
		respond.Error(writer, request, validate.RequiredError("q", "A search query is required"))
		return
	}

	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultSearchLimit)
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	descriptors, err := handler.provider.Search(request.Context(), query, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, descriptors)
}

// volume handles GET /api/v1/metadata/volumes/{id}.
func (handler *Handler) volume(writer http.ResponseWriter, request *http.Request) {
	volumeID := chi.URLParam(request, "id")

	descriptor, err := handler.provider.Volume(request.Context(), volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, descriptor)
}
