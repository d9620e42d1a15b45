// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/goal"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// fakeRepository is an in-memory goal.Repository keyed by (userID, year).
type fakeRepository struct {
	goals map[string]map[int]*goal.Goal
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{goals: make(map[string]map[int]*goal.Goal)}
}

func (f *fakeRepository) Upsert(_ context.Context, g *goal.Goal) error {
	if f.goals[g.UserID] == nil {
		f.goals[g.UserID] = make(map[int]*goal.Goal)
	}
	if existing, ok := f.goals[g.UserID][g.Year]; ok {
		existing.Target = g.Target
		existing.UpdatedAt = g.UpdatedAt
		*g = *existing
		return nil
	}
	copied := *g
	f.goals[g.UserID][g.Year] = &copied
	return nil
}

func (f *fakeRepository) GetByUserAndYear(_ context.Context, userID string, year int) (*goal.Goal, error) {
	g, ok := f.goals[userID][year]
	if !ok {
		return nil, apperr.NotFound("Reading goal")
	}
	copied := *g
	return &copied, nil
}

func (f *fakeRepository) ListForUser(_ context.Context, userID string) ([]*goal.Goal, error) {
	listed := make([]*goal.Goal, 0)
	for _, g := range f.goals[userID] {
		copied := *g
		listed = append(listed, &copied)
	}
	return listed, nil
}

func (f *fakeRepository) Delete(_ context.Context, userID string, year int) error {
	if _, ok := f.goals[userID][year]; !ok {
		return apperr.NotFound("Reading goal")
	}
	delete(f.goals[userID], year)
	return nil
}

// fakeCounter maps (userID, year) to a finished-book count.
type fakeCounter struct {
	counts map[int]int
}

func (f *fakeCounter) CountFinishedInYear(_ context.Context, _ string, year int) (int, error) {
	return f.counts[year], nil
}

/*
TestSet_DerivesProgress verifies that a freshly set goal carries the finished
count for its year, derived from the library rather than stored.
*/
func TestSet_DerivesProgress(t *testing.T) {
	year := time.Now().Year()
	service := goal.NewService(newFakeRepository(), &fakeCounter{counts: map[int]int{year: 7}})

	set, err := service.Set(context.Background(), "user-1", year, 24)

	require.NoError(t, err)
	assert.Equal(t, 24, set.Target)
	assert.Equal(t, 7, set.Finished)
}

/*
TestSet_UpsertsExistingYear verifies the one-goal-per-year rule: setting the
same year again updates the target instead of creating a second goal.
*/
func TestSet_UpsertsExistingYear(t *testing.T) {
	year := time.Now().Year()
	repo := newFakeRepository()
	service := goal.NewService(repo, &fakeCounter{})

	first, err := service.Set(context.Background(), "user-1", year, 12)
	require.NoError(t, err)

	second, err := service.Set(context.Background(), "user-1", year, 30)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 30, second.Target)
	assert.Len(t, repo.goals["user-1"], 1)
}

/*
TestSet_Validation verifies the year and target bounds.
*/
func TestSet_Validation(t *testing.T) {
	currentYear := time.Now().Year()
	service := goal.NewService(newFakeRepository(), &fakeCounter{})

	tests := []struct {
		name   string
		year   int
		target int
	}{
		{"year_too_far_back", currentYear - 51, 12},
		{"year_too_far_ahead", currentYear + 2, 12},
		{"zero_target", currentYear, 0},
		{"absurd_target", currentYear, 10001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Set(context.Background(), "user-1", tt.year, tt.target)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestGet_ProgressTracksLibrary verifies that the derived count reflects the
library at read time, not at goal creation.
*/
func TestGet_ProgressTracksLibrary(t *testing.T) {
	year := time.Now().Year()
	counter := &fakeCounter{counts: map[int]int{}}
	service := goal.NewService(newFakeRepository(), counter)

	set, err := service.Set(context.Background(), "user-1", year, 10)
	require.NoError(t, err)
	assert.Zero(t, set.Finished)

	counter.counts[year] = 3

	got, err := service.Get(context.Background(), "user-1", year)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Finished)
}
