// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package goal owns yearly reading goals. Progress is never stored: it is
// derived on read by counting library entries finished within the goal year,
// so it stays correct through backdated finishes and entry removals.
package goal

import "time"

// Goal is a user's reading target for one calendar year.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Year      int       `json:"year"`
	Target    int       `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Finished is the derived progress count, populated on reads.
	Finished int `json:"finished"`
}

// # Field Identifiers

const (
	FieldYear   = "year"
	FieldTarget = "target"
)

// Target bounds. The ceiling guards against fat-fingered input, not ambition.
const (
	MinTarget = 1
	MaxTarget = 10000
)
