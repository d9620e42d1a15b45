// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package review owns public book reviews and their like counters.

Reviews are write-once: a user posts at most one review per book and may
delete it, but never edit it. Likes are an idempotent per-user toggle backed
by a join table, so repeated requests converge instead of drifting the
counter.
*/
package review

import "time"

// Review is a single user's public review of one canonical book.
type Review struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	BookID        string    `json:"book_id"`
	Rating        float64   `json:"rating"`
	Content       string    `json:"content"`
	IsRecommended bool      `json:"is_recommended"`
	HasSpoilers   bool      `json:"has_spoilers"`
	LikeCount     int       `json:"like_count"`
	CreatedAt     time.Time `json:"created_at"`

	// LikedByViewer is set on listings for an authenticated viewer.
	LikedByViewer bool `json:"liked_by_viewer"`
}

// # Field Identifiers

const (
	FieldBookID  = "book_id"
	FieldRating  = "rating"
	FieldContent = "content"
)

// MaxContentLength bounds the review body.
const MaxContentLength = 20000
