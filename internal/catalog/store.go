// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import "context"

// Repository defines the data access contract for canonical books and genres.
type Repository interface {

	// GetByID returns the book with the given primary key, genres included.
	GetByID(context context.Context, id string) (*Book, error)

	// GetBySlug returns the book with the given URL slug, genres included.
	GetBySlug(context context.Context, slug string) (*Book, error)

	// FindByExternalID returns the book carrying the given external
	// identifier (ISBN or provider volume ID).
	FindByExternalID(context context.Context, externalID string) (*Book, error)

	// FindByTitleAuthor returns the book matching the exact, case-sensitive
	// (title, author) pair.
	FindByTitleAuthor(context context.Context, title, author string) (*Book, error)

	// CreateWithGenres inserts a new book plus its genre links inside a
	// single transaction. Genres are created on first use and reused after.
	CreateWithGenres(context context.Context, book *Book, genreNames []string) error

	// List returns a page of the catalog ordered by creation time descending,
	// along with the total row count.
	List(context context.Context, limit, offset int) ([]*Book, int, error)

	// ListGenres returns every genre ordered by name.
	ListGenres(context context.Context) ([]*Genre, error)

	// UpdateRatingAggregate recomputes the book's rating average and count
	// from its reviews.
	UpdateRatingAggregate(context context.Context, bookID string) error
}
