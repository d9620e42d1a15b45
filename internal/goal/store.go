// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package goal

import "context"

// Repository defines the data access contract for reading goals.
type Repository interface {

	// Upsert creates the user's goal for a year or updates its target.
	Upsert(context context.Context, goal *Goal) error

	// GetByUserAndYear returns the user's goal for the given year.
	GetByUserAndYear(context context.Context, userID string, year int) (*Goal, error)

	// ListForUser returns all of a user's goals, newest year first.
	ListForUser(context context.Context, userID string) ([]*Goal, error)

	// Delete removes the user's goal for a year.
	Delete(context context.Context, userID string, year int) error
}
