// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package shelf owns user-curated named shelves, an organizational layer on
// top of the library. Shelves group canonical books without affecting their
// reading status.
package shelf

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog"
)

// Shelf is a named, user-owned collection of canonical books.
type Shelf struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Books is populated on single-shelf reads, not on listings.
	Books []*catalog.Book `json:"books,omitempty"`
}

// # Field Identifiers

const (
	FieldName   = "name"
	FieldBookID = "book_id"
)

// MaxNameLength bounds the shelf name.
const MaxNameLength = 100
