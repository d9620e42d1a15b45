// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package activity

import "context"

// Repository defines the data access contract for the activity log.
//
// The log is append-only: there is intentionally no update or delete method.
type Repository interface {

	// Insert appends a record to the log.
	Insert(context context.Context, record *Record) error

	// ListForUser returns a cursor page of a user's records, newest first,
	// with the canonical book hydrated. An empty afterID starts from the
	// newest record. When publicOnly is set, records whose originating
	// library entry is private (or gone) are excluded.
	ListForUser(context context.Context, userID string, publicOnly bool, afterID string, limit int) ([]*Record, error)
}
