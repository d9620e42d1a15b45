// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// Handler exposes reviews over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the review endpoints.
//
// # Endpoints
//   - GET    /book/{bookID} : A book's reviews (anonymous OK).
//   - POST   /              : Post a review (authenticated).
//   - DELETE /{id}          : Delete own review (authenticated).
//   - POST   /{id}/like     : Toggle like (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/book/{bookID}", handler.listForBook)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createReview)
		protected.Delete("/{id}", handler.deleteReview)
		protected.Post("/{id}/like", handler.toggleLike)
	})

	return router
}

type createReviewRequest struct {
	BookID        string  `json:"book_id"`
	Rating        float64 `json:"rating"`
	Content       string  `json:"content"`
	IsRecommended bool    `json:"is_recommended"`
	HasSpoilers   bool    `json:"has_spoilers"`
}

// createReview handles POST /api/v1/reviews.
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createReviewRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), userID, CreateInput{
		BookID:        payload.BookID,
		Rating:        payload.Rating,
		Content:       payload.Content,
		IsRecommended: payload.IsRecommended,
		HasSpoilers:   payload.HasSpoilers,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// deleteReview handles DELETE /api/v1/reviews/{id}.
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
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

// toggleLike handles POST /api/v1/reviews/{id}/like.
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.ToggleLike(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// listForBook handles GET /api/v1/reviews/book/{bookID}. Anonymous access is
// allowed.
func (handler *Handler) listForBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListForBook(request.Context(), bookID, viewerID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}
