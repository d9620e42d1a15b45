// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package activity owns the append-only reading activity log.

Records are derived from library mutations, never written directly by
clients. There is no update or delete path: the log is insert-only, and
records survive the removal of the library entry that produced them.
*/
package activity

import (
	"encoding/json"
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog"
)

// Type classifies what a record represents.
type Type string

const (
	TypeAdded    Type = "added"
	TypeStarted  Type = "started"
	TypeFinished Type = "finished"
	TypeUpdated  Type = "updated"
	TypeReviewed Type = "reviewed"
)

// IsValid reports whether the type is one of the known values.
func (t Type) IsValid() bool {
	switch t {
	case TypeAdded, TypeStarted, TypeFinished, TypeUpdated, TypeReviewed:
		return true
	}
	return false
}

// Record is a single immutable activity log row.
type Record struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
	Type   Type   `json:"type"`
	// Details carries the type-specific payload (the change set of the
	// originating mutation), stored as JSONB and emitted verbatim.
	Details    json.RawMessage `json:"details,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`

	// Book is the canonical record, populated on hydrated feeds.
	Book *catalog.Book `json:"book,omitempty"`
}
