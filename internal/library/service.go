// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// # Contracts & Types

// BookResolver maps a book descriptor onto a canonical book ID, creating the
// catalog record on first sight.
type BookResolver interface {
	Resolve(context context.Context, descriptor catalog.BookDescriptor) (string, error)
}

// ActivityRecorder appends a record to the user's activity log.
//
// Emission is best-effort: the service logs failures but never rolls back the
// primary mutation because of them.
type ActivityRecorder interface {
	Record(context context.Context, userID, bookID string, activityType activity.Type, details any) error
}

// Service implements the user-book state machine use cases.
type Service struct {
	repo     Repository
	resolver BookResolver
	recorder ActivityRecorder
	logger   *slog.Logger
}

// NewService constructs a library [Service].
func NewService(repo Repository, resolver BookResolver, recorder ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		recorder: recorder,
		logger:   logger,
	}
}

// # Entry Creation

// CreateEntryInput holds the data to add a book to a user's library.
//
// Exactly one of BookID (direct catalog browse) or Descriptor (search result
// or manual entry) must be provided.
type CreateEntryInput struct {
	BookID     string
	Descriptor *catalog.BookDescriptor
	Status     string
	Progress   *int
	Rating     *float64
	Notes      string
	IsPublic   *bool
}

// CreateEntry adds a book to the user's library.
//
// The (user, book) pair is unique: adding the same book twice is a rejected
// Conflict, not a silent merge.
func (service *Service) CreateEntry(context context.Context, userID string, input CreateEntryInput) (*Entry, error) {
	status, err := ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if err := validateOptionalFields(input.Progress, input.Rating, input.Notes); err != nil {
		return nil, err
	}

	bookID := input.BookID
	if bookID == "" {
		if input.Descriptor == nil {
			return nil, validate.RequiredError(FieldBookID, "Either book_id or a book descriptor is required")
		}
		bookID, err = service.resolver.Resolve(context, *input.Descriptor)
		if err != nil {
			return nil, err
		}
	}

	// Pre-insert existence check gives a clean Conflict message; the unique
	// constraint still backs it under concurrent double-submission.
	if _, err := service.repo.GetByUserAndBook(context, userID, bookID); err == nil {
		return nil, apperr.Conflict("This book is already in your library")
	}

	now := time.Now()
	entry := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Status:    status,
		Progress:  input.Progress,
		Rating:    input.Rating,
		Notes:     input.Notes,
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.IsPublic != nil {
		entry.IsPublic = *input.IsPublic
	}

	// The initial status carries its transition side effects too: adding a
	// book straight as currently-reading stamps the start date.
	change, _ := entry.ApplyStatus(status, now)

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.emit(context, entry, activity.TypeAdded, change)

	return entry, nil
}

// # Entry Mutations

// UpdateStatus transitions an entry to a new reading status.
func (service *Service) UpdateStatus(context context.Context, userID, entryID, rawStatus string) (*Entry, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	change, startedNow := entry.ApplyStatus(status, time.Now())

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.emit(context, entry, classifyStatusActivity(status, startedNow), change)

	return entry, nil
}

// UpdateProgress updates the reading progress percentage.
//
// Setting exactly 100 while currently-reading promotes the entry to finished.
func (service *Service) UpdateProgress(context context.Context, userID, entryID string, progress int) (*Entry, error) {
	validator := &validate.Validator{}
	validator.Range(FieldProgress, progress, 0, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	change, promoted := entry.ApplyProgress(progress, time.Now())

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	activityType := activity.TypeUpdated
	if promoted {
		activityType = activity.TypeFinished
	}
	service.emit(context, entry, activityType, change)

	return entry, nil
}

// UpdateRating sets or clears the entry's rating. No side effects on status.
func (service *Service) UpdateRating(context context.Context, userID, entryID string, rating *float64) (*Entry, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Rating = rating
	entry.UpdatedAt = time.Now()

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.emit(context, entry, activity.TypeUpdated, Change{Rating: rating})

	return entry, nil
}

// UpdateNotes replaces the entry's private notes. No side effects.
func (service *Service) UpdateNotes(context context.Context, userID, entryID, notes string) (*Entry, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldNotes, notes, MaxNotesLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Notes = notes
	entry.UpdatedAt = time.Now()

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.emit(context, entry, activity.TypeUpdated, Change{NotesChanged: true})

	return entry, nil
}

// UpdateVisibility flips the entry between public and private.
func (service *Service) UpdateVisibility(context context.Context, userID, entryID string, isPublic bool) (*Entry, error) {
	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.IsPublic = isPublic
	entry.UpdatedAt = time.Now()

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.emit(context, entry, activity.TypeUpdated, Change{IsPublic: &isPublic})

	return entry, nil
}

// RemoveEntry hard-deletes an entry from the user's library.
//
// The removal itself is not projected into the activity log, and existing
// activity records for the book are retained.
func (service *Service) RemoveEntry(context context.Context, userID, entryID string) error {
	entry, err := service.ownedEntry(context, userID, entryID)
	if err != nil {
		return err
	}

	return service.repo.Delete(context, entry.ID)
}

// # Listings

// GetEntry returns a single entry, enforcing visibility for non-owners.
func (service *Service) GetEntry(context context.Context, viewerID, entryID string) (*Entry, error) {
	entry, err := service.repo.GetByID(context, entryID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != viewerID && !entry.IsPublic {
		return nil, apperr.NotFound("Library entry")
	}

	return entry, nil
}

// ListForViewer returns a page of ownerID's library as seen by viewerID.
//
// Owners see all entries; other viewers only public ones. The filter runs in
// the store query, so private rows never cross the wire.
func (service *Service) ListForViewer(context context.Context, viewerID, ownerID string, status *Status, limit, offset int) ([]*Entry, int, error) {
	publicOnly := viewerID != ownerID
	return service.repo.ListForUser(context, ownerID, publicOnly, status, limit, offset)
}

// # Internals

// ownedEntry loads an entry and verifies ownership. A mismatch is NotFound,
// not Forbidden, to avoid leaking the existence of other users' entries.
func (service *Service) ownedEntry(context context.Context, userID, entryID string) (*Entry, error) {
	entry, err := service.repo.GetByID(context, entryID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, apperr.NotFound("Library entry")
	}

	return entry, nil
}

// emit appends an activity record for a successful mutation. Best-effort:
// failures are logged and swallowed, never failing the primary operation.
func (service *Service) emit(context context.Context, entry *Entry, activityType activity.Type, change Change) {
	if err := service.recorder.Record(context, entry.UserID, entry.BookID, activityType, change); err != nil {
		service.logger.WarnContext(context, "activity_emit_failed",
			slog.String("entry_id", entry.ID),
			slog.String("type", string(activityType)),
			slog.Any("error", err),
		)
	}
}

// classifyStatusActivity derives the activity type for a status transition.
//
// "started" is only emitted the first time an entry enters currently-reading
// (i.e. when the transition stamped a fresh start date); re-entering the
// state later is a plain update.
func classifyStatusActivity(status Status, startedNow bool) activity.Type {
	switch {
	case status == StatusCurrentlyReading && startedNow:
		return activity.TypeStarted
	case status == StatusFinished:
		return activity.TypeFinished
	default:
		return activity.TypeUpdated
	}
}

// validateOptionalFields checks creation-time optional attributes.
func validateOptionalFields(progress *int, rating *float64, notes string) error {
	validator := &validate.Validator{}
	if progress != nil {
		validator.Range(FieldProgress, *progress, 0, 100)
	}
	validator.MaxLen(FieldNotes, notes, MaxNotesLength)
	if err := validator.Err(); err != nil {
		return err
	}
	return validateRating(rating)
}

// validateRating enforces the 1-5 range with half-integer granularity.
func validateRating(rating *float64) error {
	if rating == nil {
		return nil
	}

	value := *rating
	validator := &validate.Validator{}
	validator.Custom(FieldRating, value < 1 || value > 5, "Must be between 1 and 5").
		Custom(FieldRating, value*2 != float64(int(value*2)), "Must be a whole or half star")

	return validator.Err()
}
