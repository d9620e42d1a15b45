// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/review"
)

// fakeRepository is an in-memory review.Repository with toggle semantics.
type fakeRepository struct {
	reviews map[string]*review.Review
	likes   map[string]map[string]bool // reviewID -> userID -> liked
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews: make(map[string]*review.Review),
		likes:   make(map[string]map[string]bool),
	}
}

func (f *fakeRepository) Create(_ context.Context, r *review.Review) error {
	copied := *r
	f.reviews[r.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*review.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) GetByUserAndBook(_ context.Context, userID, bookID string) (*review.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.BookID == bookID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepository) ListForBook(_ context.Context, bookID, _ string, _, _ int) ([]*review.Review, int, error) {
	matched := make([]*review.Review, 0)
	for _, r := range f.reviews {
		if r.BookID == bookID {
			matched = append(matched, r)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) ToggleLike(_ context.Context, reviewID, userID string) (int, bool, error) {
	r, ok := f.reviews[reviewID]
	if !ok {
		return 0, false, apperr.NotFound("Review")
	}

	if f.likes[reviewID] == nil {
		f.likes[reviewID] = make(map[string]bool)
	}
	liked := !f.likes[reviewID][userID]
	f.likes[reviewID][userID] = liked

	count := 0
	for _, on := range f.likes[reviewID] {
		if on {
			count++
		}
	}
	r.LikeCount = count

	return count, liked, nil
}

// fakeAggregator counts recompute calls.
type fakeAggregator struct {
	calls []string
}

func (f *fakeAggregator) UpdateRatingAggregate(_ context.Context, bookID string) error {
	f.calls = append(f.calls, bookID)
	return nil
}

// fakeRecorder captures activity emissions.
type fakeRecorder struct {
	types []activity.Type
}

func (f *fakeRecorder) Record(_ context.Context, _, _ string, activityType activity.Type, _ any) error {
	f.types = append(f.types, activityType)
	return nil
}

func newTestService() (*review.Service, *fakeRepository, *fakeAggregator, *fakeRecorder) {
	repo := newFakeRepository()
	aggregator := &fakeAggregator{}
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(repo, aggregator, recorder, logger), repo, aggregator, recorder
}

func validInput() review.CreateInput {
	return review.CreateInput{
		BookID:        "book-1",
		Rating:        4.5,
		Content:       "A slow burn, worth every page.",
		IsRecommended: true,
	}
}

/*
TestCreate_RecomputesAggregateAndEmitsReviewed verifies the full posting side
effects: aggregate recompute plus a "reviewed" activity record.
*/
func TestCreate_RecomputesAggregateAndEmitsReviewed(t *testing.T) {
	service, repo, aggregator, recorder := newTestService()

	posted, err := service.Create(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.Len(t, repo.reviews, 1)
	assert.Equal(t, []string{"book-1"}, aggregator.calls)
	require.Len(t, recorder.types, 1)
	assert.Equal(t, activity.TypeReviewed, recorder.types[0])
	assert.Zero(t, posted.LikeCount)
}

/*
TestCreate_SecondReviewIsConflict verifies write-once semantics: one review
per (user, book).
*/
func TestCreate_SecondReviewIsConflict(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), "user-1", validInput())
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestCreate_DifferentUsersMayReviewSameBook verifies that the uniqueness rule
is per user, not per book.
*/
func TestCreate_DifferentUsersMayReviewSameBook(t *testing.T) {
	service, repo, _, _ := newTestService()

	_, err := service.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "user-2", validInput())
	require.NoError(t, err)

	assert.Len(t, repo.reviews, 2)
}

/*
TestCreate_Validation verifies the rating and content rules.
*/
func TestCreate_Validation(t *testing.T) {
	service, _, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*review.CreateInput)
	}{
		{"rating_too_low", func(in *review.CreateInput) { in.Rating = 0.5 }},
		{"rating_too_high", func(in *review.CreateInput) { in.Rating = 5.5 }},
		{"rating_not_half_step", func(in *review.CreateInput) { in.Rating = 3.7 }},
		{"empty_content", func(in *review.CreateInput) { in.Content = "" }},
		{"missing_book", func(in *review.CreateInput) { in.BookID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), "user-1", input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestToggleLike_IsIdempotentPerState verifies that the like toggle converges:
like, unlike, like again, with the counter tracking the join state.
*/
func TestToggleLike_IsIdempotentPerState(t *testing.T) {
	service, _, _, _ := newTestService()
	posted, err := service.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	liked, err := service.ToggleLike(context.Background(), "user-2", posted.ID)
	require.NoError(t, err)
	assert.True(t, liked.LikedByViewer)
	assert.Equal(t, 1, liked.LikeCount)

	unliked, err := service.ToggleLike(context.Background(), "user-2", posted.ID)
	require.NoError(t, err)
	assert.False(t, unliked.LikedByViewer)
	assert.Zero(t, unliked.LikeCount)

	relicked, err := service.ToggleLike(context.Background(), "user-2", posted.ID)
	require.NoError(t, err)
	assert.True(t, relicked.LikedByViewer)
	assert.Equal(t, 1, relicked.LikeCount)
}

/*
TestDelete_OnlyAuthorMayDelete verifies ownership on the delete path and the
aggregate recompute after removal.
*/
func TestDelete_OnlyAuthorMayDelete(t *testing.T) {
	service, repo, aggregator, _ := newTestService()
	posted, err := service.Create(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	err = service.Delete(context.Background(), "user-2", posted.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.Delete(context.Background(), "user-1", posted.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.reviews)
	assert.Equal(t, []string{"book-1", "book-1"}, aggregator.calls)
}
