// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import "context"

// Repository defines the data access contract for library entries.
type Repository interface {

	// Create persists a new entry. A row already existing for the
	// (user, book) pair surfaces as a Conflict via the unique constraint.
	Create(context context.Context, entry *Entry) error

	// GetByID returns the entry with the given primary key.
	GetByID(context context.Context, id string) (*Entry, error)

	// GetByUserAndBook returns the entry for the (user, book) pair.
	GetByUserAndBook(context context.Context, userID, bookID string) (*Entry, error)

	// Update persists all mutable fields of an entry.
	Update(context context.Context, entry *Entry) error

	// Delete hard-deletes an entry. No other entity is cascaded.
	Delete(context context.Context, id string) error

	// ListForUser returns a page of a user's entries, newest first, plus the
	// total count. When publicOnly is set, private entries are excluded in
	// the query itself (cross-user listings).
	ListForUser(context context.Context, userID string, publicOnly bool, status *Status, limit, offset int) ([]*Entry, int, error)

	// CountFinishedInYear returns how many of the user's entries carry a
	// finish date inside the given calendar year. Used by reading goals.
	CountFinishedInYear(context context.Context, userID string, year int) (int, error)
}
