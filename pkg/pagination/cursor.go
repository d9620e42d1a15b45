// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package pagination

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
)

// Cursor-based (keyset) pagination for feeds that must stay stable while new
// rows are inserted. The cursor is the UUIDv7 primary key of the last item on
// the previous page, base64url-encoded. Because UUIDv7 values are
// time-ordered, "id < cursor" walks the feed backwards in time without the
// page-shift problem of OFFSET windows.

// CursorParams holds the parsed cursor and limit from a request's query string.
type CursorParams struct {
	// After is the exclusive anchor ID. Empty means start from the newest row.
	After string
	Limit int
}

// CursorMeta is the cursor metadata included in feed responses.
type CursorMeta struct {
	// NextCursor is the opaque token for the next page. Empty when exhausted.
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
	Limit      int    `json:"limit"`
}

// EncodeCursor converts a row ID into an opaque cursor token.
func EncodeCursor(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

// DecodeCursor converts an opaque cursor token back into a row ID.
//
// Malformed tokens decode to an empty string, which callers treat as
// "start from the beginning" rather than an error.
func DecodeCursor(token string) string {
	if token == "" {
		return ""
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ""
	}

	// The decoded value must be a UUID, anything else is a forged cursor.
	if _, err := uuid.Parse(string(raw)); err != nil {
		return ""
	}

	return string(raw)
}

// CursorFromRequest parses "cursor" and "limit" query parameters.
//
// Limits are clamped the same way as [FromRequest].
func CursorFromRequest(r *http.Request) CursorParams {
	limit := parseIntParam(r, "limit", DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return CursorParams{
		After: DecodeCursor(r.URL.Query().Get("cursor")),
		Limit: limit,
	}
}

// NewCursorMeta constructs feed metadata from the returned page.
//
// lastID must be the ID of the final item in the page; it is ignored when
// hasMore is false.
func NewCursorMeta(lastID string, limit int, hasMore bool) CursorMeta {
	meta := CursorMeta{HasMore: hasMore, Limit: limit}
	if hasMore && lastID != "" {
		meta.NextCursor = EncodeCursor(lastID)
	}
	return meta
}
