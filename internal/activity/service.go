// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shelfmark/shelfmark/pkg/pagination"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// Service implements activity log use cases.
type Service struct {
	repo Repository
}

// NewService constructs an activity [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an activity record derived from a library or social
// mutation. The details payload is serialized to JSON as stored.
//
// This is the write path behind the library service's best-effort emission;
// it returns errors for the caller to log, never to surface to clients.
func (service *Service) Record(context context.Context, userID, bookID string, activityType Type, details any) error {
	var payload json.RawMessage
	if details != nil {
		encoded, err := json.Marshal(details)
		if err != nil {
			return err
		}
		payload = encoded
	}

	record := &Record{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		Type:       activityType,
		Details:    payload,
		OccurredAt: time.Now(),
	}

	return service.repo.Insert(context, record)
}

// ListForViewer returns a cursor page of ownerID's activity as seen by
// viewerID, plus the metadata for fetching the next page.
//
// Owners see their full history; any other viewer sees only records whose
// originating library entry is public. Pagination is cursor-only: the feed
// grows at the head, so offset pages would shift between requests.
func (service *Service) ListForViewer(context context.Context, viewerID, ownerID string, params pagination.CursorParams) ([]*Record, pagination.CursorMeta, error) {
	publicOnly := viewerID != ownerID

	// Fetch one extra row to learn whether another page exists without a
	// second query.
	records, err := service.repo.ListForUser(context, ownerID, publicOnly, params.After, params.Limit+1)
	if err != nil {
		return nil, pagination.CursorMeta{}, err
	}

	hasMore := len(records) > params.Limit
	if hasMore {
		records = records[:params.Limit]
	}

	lastID := ""
	if len(records) > 0 {
		lastID = records[len(records)-1].ID
	}

	return records, pagination.NewCursorMeta(lastID, params.Limit, hasMore), nil
}
