// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package library owns the per-user relationship to a canonical book.

An Entry is the central mutable entity of the platform: one row per
(user, book) pair carrying reading status, progress, rating, dates, notes,
and visibility. The transition rules live here as pure functions on the
entity so the service layer stays a thin orchestrator.

# State Machine

Three states: want-to-read, currently-reading, finished. Removal is a delete,
not a state. Transitions stamp start/finish dates and force progress per the
rules encoded in [Entry.ApplyStatus] and [Entry.ApplyProgress].
*/
package library

import (
	"time"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

// # Domain Entities

// Entry is a single user's tracking record for one canonical book.
type Entry struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	BookID   string `json:"book_id"`
	Status   Status `json:"status"`
	// Progress is a 0-100 percentage, meaningful only while the status is
	// currently-reading. It is not cleared on transition away; readers must
	// not interpret stale progress as current.
	Progress   *int       `json:"progress,omitempty"`
	Rating     *float64   `json:"rating,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	IsPublic   bool       `json:"is_public"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Book is the canonical record, populated on hydrated listings.
	Book *catalog.Book `json:"book,omitempty"`
}

// Change describes which tracked fields a mutation touched. It feeds the
// activity log's details payload.
type Change struct {
	Status       *Status    `json:"status,omitempty"`
	Progress     *int       `json:"progress,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	NotesChanged bool       `json:"notes_changed,omitempty"`
	IsPublic     *bool      `json:"is_public,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// # Transition Rules

// ApplyStatus transitions the entry to a new status, applying the guarded
// side effects:
//
//   - entering currently-reading stamps StartedAt only if unset
//   - entering finished stamps FinishedAt only if unset and forces progress
//     to 100 if it was below
//
// It returns the change set for activity projection and whether the
// transition stamped a fresh start date (the "started for the first time"
// signal used for activity classification).
func (entry *Entry) ApplyStatus(newStatus Status, now time.Time) (Change, bool) {
	change := Change{Status: &newStatus}
	startedNow := false

	entry.Status = newStatus

	switch newStatus {
	case StatusCurrentlyReading:
		if entry.StartedAt == nil {
			entry.StartedAt = pointer.To(now)
			change.StartedAt = entry.StartedAt
			startedNow = true
		}

	case StatusFinished:
		if entry.FinishedAt == nil {
			entry.FinishedAt = pointer.To(now)
			change.FinishedAt = entry.FinishedAt
		}
		if pointer.Val(entry.Progress) < 100 {
			entry.Progress = pointer.To(100)
			change.Progress = entry.Progress
		}
	}

	entry.UpdatedAt = now
	return change, startedNow
}

// ApplyProgress updates the reading progress, applying two rules:
//
//   - progress above zero with no start date stamps StartedAt
//   - progress of exactly 100 while currently-reading promotes the entry to
//     finished (with the finished-transition side effects)
//
// The returned bool reports whether the entry was promoted to finished.
func (entry *Entry) ApplyProgress(progress int, now time.Time) (Change, bool) {
	change := Change{Progress: &progress}

	entry.Progress = &progress

	if progress > 0 && entry.StartedAt == nil {
		entry.StartedAt = pointer.To(now)
		change.StartedAt = entry.StartedAt
	}

	if progress == 100 && entry.Status == StatusCurrentlyReading {
		finishChange, _ := entry.ApplyStatus(StatusFinished, now)
		change.Status = finishChange.Status
		change.FinishedAt = finishChange.FinishedAt
		return change, true
	}

	entry.UpdatedAt = now
	return change, false
}

// # Field Identifiers

const (
	FieldBookID   = "book_id"
	FieldStatus   = "status"
	FieldProgress = "progress"
	FieldRating   = "rating"
	FieldNotes    = "notes"
	FieldIsPublic = "is_public"
)

// MaxNotesLength bounds the free-text private notes.
const MaxNotesLength = 10000
