// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package shelf

import (
	"context"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// Service implements shelf use cases.
type Service struct {
	repo Repository
}

// NewService constructs a shelf [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new empty shelf for the user.
func (service *Service) Create(context context.Context, userID, name string) (*Shelf, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	shelf := &Shelf{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, shelf); err != nil {
		return nil, err
	}

	return shelf, nil
}

// Get returns one of the user's shelves with its books hydrated.
func (service *Service) Get(context context.Context, userID, shelfID string) (*Shelf, error) {
	return service.ownedShelf(context, userID, shelfID)
}

// Rename changes a shelf's name.
func (service *Service) Rename(context context.Context, userID, shelfID, name string) (*Shelf, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	shelf, err := service.ownedShelf(context, userID, shelfID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Rename(context, shelf.ID, name); err != nil {
		return nil, err
	}

	shelf.Name = name
	shelf.UpdatedAt = time.Now()

	return shelf, nil
}

// Delete removes a shelf and its book links. Library entries are unaffected.
func (service *Service) Delete(context context.Context, userID, shelfID string) error {
	shelf, err := service.ownedShelf(context, userID, shelfID)
	if err != nil {
		return err
	}

	return service.repo.Delete(context, shelf.ID)
}

// List returns all of the user's shelves with book counts.
func (service *Service) List(context context.Context, userID string) ([]*Shelf, error) {
	return service.repo.ListForUser(context, userID)
}

// AddBook links a book to one of the user's shelves. Idempotent.
func (service *Service) AddBook(context context.Context, userID, shelfID, bookID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID).UUID(FieldBookID, bookID)
	if err := validator.Err(); err != nil {
		return err
	}

	shelf, err := service.ownedShelf(context, userID, shelfID)
	if err != nil {
		return err
	}

	return service.repo.AddBook(context, shelf.ID, bookID)
}

// RemoveBook unlinks a book from one of the user's shelves.
func (service *Service) RemoveBook(context context.Context, userID, shelfID, bookID string) error {
	shelf, err := service.ownedShelf(context, userID, shelfID)
	if err != nil {
		return err
	}

	return service.repo.RemoveBook(context, shelf.ID, bookID)
}

// ownedShelf loads a shelf and verifies ownership. Mismatches are NotFound.
func (service *Service) ownedShelf(context context.Context, userID, shelfID string) (*Shelf, error) {
	shelf, err := service.repo.GetByID(context, shelfID)
	if err != nil {
		return nil, err
	}

	if shelf.UserID != userID {
		return nil, apperr.NotFound("Shelf")
	}

	return shelf, nil
}

func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}
