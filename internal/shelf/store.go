// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package shelf

import "context"

// Repository defines the data access contract for shelves.
type Repository interface {

	// Create persists a new shelf. A duplicate (user, name) pair surfaces
	// as a Conflict via the unique constraint.
	Create(context context.Context, shelf *Shelf) error

	// GetByID returns the shelf with its books hydrated.
	GetByID(context context.Context, id string) (*Shelf, error)

	// Rename updates the shelf's name.
	Rename(context context.Context, id, name string) error

	// Delete hard-deletes a shelf and its book links.
	Delete(context context.Context, id string) error

	// ListForUser returns all of a user's shelves with book counts,
	// alphabetical by name.
	ListForUser(context context.Context, userID string) ([]*Shelf, error)

	// AddBook links a book to a shelf. Adding an already-present book is a
	// no-op.
	AddBook(context context.Context, shelfID, bookID string) error

	// RemoveBook unlinks a book from a shelf.
	RemoveBook(context context.Context, shelfID, bookID string) error
}
