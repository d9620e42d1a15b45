// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package review

import "context"

// Repository defines the data access contract for reviews and likes.
type Repository interface {

	// Create persists a new review. A duplicate (user, book) pair surfaces
	// as a Conflict via the unique constraint.
	Create(context context.Context, review *Review) error

	// GetByID returns the review with the given primary key.
	GetByID(context context.Context, id string) (*Review, error)

	// GetByUserAndBook returns the review for the (user, book) pair.
	GetByUserAndBook(context context.Context, userID, bookID string) (*Review, error)

	// Delete hard-deletes a review together with its like rows.
	Delete(context context.Context, id string) error

	// ListForBook returns a page of a book's reviews, newest first, plus the
	// total count. When viewerID is non-empty, LikedByViewer is populated.
	ListForBook(context context.Context, bookID, viewerID string, limit, offset int) ([]*Review, int, error)

	// ToggleLike flips the viewer's like on a review and maintains the
	// denormalized counter in the same transaction. It returns the review's
	// new like count and whether the viewer now likes it.
	ToggleLike(context context.Context, reviewID, userID string) (int, bool, error)
}
