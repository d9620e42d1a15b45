// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/slug"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// Service implements catalog use cases, most importantly Resolve: the
// create-or-reuse gate every book passes through before it can appear in a
// user's library.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a catalog [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve maps a book descriptor onto a canonical book ID.
//
// # Algorithm
//
//  1. If the descriptor carries an external identifier, look up an existing
//     book by it; reuse on hit.
//  2. Otherwise (or on miss), look up by exact case-sensitive (title, author);
//     reuse on hit.
//  3. Otherwise insert a new canonical book and create-or-reuse its genres,
//     all inside one transaction.
//
// Two concurrent resolves for the same new book race on the insert; the
// unique indexes make the loser fail with a unique violation, after which we
// re-read the winner's row instead of surfacing the conflict.
func (service *Service) Resolve(context context.Context, descriptor BookDescriptor) (string, error) {
	if err := validateDescriptor(descriptor); err != nil {
		return "", err
	}

	// 1. External identifier match
	if descriptor.ExternalID != "" {
		book, err := service.repo.FindByExternalID(context, descriptor.ExternalID)
		if err == nil {
			return book.ID, nil
		}
		if !isNotFound(err) {
			return "", err
		}
	}

	// 2. Exact (title, author) match
	book, err := service.repo.FindByTitleAuthor(context, descriptor.Title, descriptor.Author)
	if err == nil {
		return book.ID, nil
	}
	if !isNotFound(err) {
		return "", err
	}

	// 3. Insert a fresh canonical record
	created := newBookFromDescriptor(descriptor)
	if err := service.repo.CreateWithGenres(context, created, descriptor.Genres); err != nil {
		if resolved, rerr := service.recoverLostRace(context, descriptor, err); rerr == nil {
			return resolved, nil
		}
		return "", err
	}

	service.logger.Info("catalog_book_created",
		slog.String("book_id", created.ID),
		slog.String("title", created.Title),
	)

	return created.ID, nil
}

// GetBook returns a single canonical book by ID.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.GetByID(context, id)
}

// GetBookBySlug returns a single canonical book by URL slug.
func (service *Service) GetBookBySlug(context context.Context, slug string) (*Book, error) {
	return service.repo.GetBySlug(context, slug)
}

// ListBooks returns a catalog page plus the total count.
func (service *Service) ListBooks(context context.Context, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(context, limit, offset)
}

// ListGenres returns all genres ordered by name.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

// recoverLostRace handles the duplicate-insert race: if the create failed on
// a unique violation, another request resolved the same book first, so the
// winner's row is authoritative.
func (service *Service) recoverLostRace(context context.Context, descriptor BookDescriptor, createErr error) (string, error) {
	if !dberr.IsUniqueViolation(createErr) {
		return "", createErr
	}

	if descriptor.ExternalID != "" {
		if book, err := service.repo.FindByExternalID(context, descriptor.ExternalID); err == nil {
			return book.ID, nil
		}
	}

	book, err := service.repo.FindByTitleAuthor(context, descriptor.Title, descriptor.Author)
	if err != nil {
		return "", createErr
	}

	return book.ID, nil
}

// newBookFromDescriptor builds a canonical Book entity from resolver input.
func newBookFromDescriptor(descriptor BookDescriptor) *Book {
	return &Book{
		ID:            uuid.New(),
		Title:         descriptor.Title,
		Author:        descriptor.Author,
		Slug:          slug.From(descriptor.Title + " " + descriptor.Author),
		CoverURL:      descriptor.CoverURL,
		Description:   descriptor.Description,
		Publisher:     descriptor.Publisher,
		PublishedDate: descriptor.PublishedDate,
		PageCount:     descriptor.PageCount,
		ExternalID:    descriptor.ExternalID,
		Language:      descriptor.Language,
	}
}

// validateDescriptor enforces the resolver's minimal input contract.
func validateDescriptor(descriptor BookDescriptor) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, descriptor.Title).
		MaxLen(FieldTitle, descriptor.Title, 500).
		Required(FieldAuthor, descriptor.Author).
		MaxLen(FieldAuthor, descriptor.Author, 200).
		Custom(FieldPageCount, descriptor.PageCount < 0, "Must not be negative")

	return validator.Err()
}

// isNotFound reports whether err is a NOT_FOUND application error.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "NOT_FOUND"
}
