// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package catalog owns the canonical book records shared across all users.

A canonical book represents a work independent of any reader: every user who
tracks "The Left Hand of Darkness" points at the same catalog row. Identity is
established by external identifier (ISBN or metadata-provider volume ID) when
present, otherwise by the exact (title, author) pair.

# Architecture

  - Entities: Book, Genre, BookDescriptor.
  - Resolver: create-or-reuse entry point for books arriving from search
    results, manual entry, or direct catalog browsing.
  - Aggregates: rating average/count are derived values recomputed by the
    review layer, never edited directly.
*/
package catalog

import "time"

// # Domain Entities

// Book is a canonical, user-independent record of a work.
//
// Immutable after creation except for the rating aggregates.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Slug          string    `json:"slug"`
	CoverURL      string    `json:"cover_url,omitempty"`
	Description   string    `json:"description,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	PageCount     int       `json:"page_count,omitempty"`
	ExternalID    string    `json:"external_id,omitempty"`
	Language      string    `json:"language,omitempty"`
	Genres        []Genre   `json:"genres,omitempty"`
	RatingAvg     float64   `json:"rating_avg"`
	RatingCount   int       `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Genre is a shared categorization label linked to books via a join table.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// BookDescriptor is the input to the resolver: either a fully-populated
// record from the external metadata provider or a manual entry carrying at
// least Title and Author.
type BookDescriptor struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	CoverURL      string   `json:"cover_url"`
	Description   string   `json:"description"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"published_date"`
	PageCount     int      `json:"page_count"`
	ExternalID    string   `json:"external_id"`
	Language      string   `json:"language"`
	Genres        []string `json:"genres"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldAuthor     = "author"
	FieldExternalID = "external_id"
	FieldPageCount  = "page_count"
)
