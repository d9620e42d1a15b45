// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package goal

import (
	"context"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// FinishedCounter reports how many books a user finished in a calendar year.
// Implemented by the library repository.
type FinishedCounter interface {
	CountFinishedInYear(context context.Context, userID string, year int) (int, error)
}

// Service implements reading goal use cases.
type Service struct {
	repo    Repository
	counter FinishedCounter
}

// NewService constructs a goal [Service].
func NewService(repo Repository, counter FinishedCounter) *Service {
	return &Service{repo: repo, counter: counter}
}

// Set creates or updates the user's goal for a year. One goal per year.
func (service *Service) Set(context context.Context, userID string, year, target int) (*Goal, error) {
	currentYear := time.Now().Year()

	validator := &validate.Validator{}
	validator.Range(FieldYear, year, currentYear-50, currentYear+1).
		Range(FieldTarget, target, MinTarget, MaxTarget)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	goal := &Goal{
		ID:        uuid.New(),
		UserID:    userID,
		Year:      year,
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Upsert(context, goal); err != nil {
		return nil, err
	}

	return service.withProgress(context, goal)
}

// Get returns the user's goal for a year with derived progress.
func (service *Service) Get(context context.Context, userID string, year int) (*Goal, error) {
	goal, err := service.repo.GetByUserAndYear(context, userID, year)
	if err != nil {
		return nil, err
	}

	return service.withProgress(context, goal)
}

// List returns all of the user's goals with derived progress.
func (service *Service) List(context context.Context, userID string) ([]*Goal, error) {
	goals, err := service.repo.ListForUser(context, userID)
	if err != nil {
		return nil, err
	}

	for _, goal := range goals {
		if _, err := service.withProgress(context, goal); err != nil {
			return nil, err
		}
	}

	return goals, nil
}

// Remove deletes the user's goal for a year.
func (service *Service) Remove(context context.Context, userID string, year int) error {
	return service.repo.Delete(context, userID, year)
}

// withProgress fills in the derived finished count.
func (service *Service) withProgress(context context.Context, goal *Goal) (*Goal, error) {
	finished, err := service.counter.CountFinishedInYear(context, goal.UserID, goal.Year)
	if err != nil {
		return nil, err
	}

	goal.Finished = finished
	return goal, nil
}
