// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package activity

import (
	"net/http"

	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// Handler exposes the activity feed over HTTP.
//
// There is deliberately no write endpoint: records only enter the log as
// side effects of library and review mutations.
type Handler struct {
	service *Service
}

// NewHandler constructs an activity [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListForUser handles GET /api/v1/users/{userID}/activity.
//
// Mounted at the server level because the owner ID comes from the path.
// Anonymous access is allowed; non-owners only see public records.
func (handler *Handler) ListForUser(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.ID(request, "userID")

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	params := pagination.CursorFromRequest(request)

	records, meta, err := handler.service.ListForViewer(request.Context(), viewerID, ownerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CursorPaginated(writer, records, meta)
}

// ListOwn handles GET /api/v1/activity (the authenticated user's own feed).
func (handler *Handler) ListOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.CursorFromRequest(request)

	records, meta, err := handler.service.ListForViewer(request.Context(), userID, userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CursorPaginated(writer, records, meta)
}
