// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// RatingAggregator recomputes a book's denormalized rating average and count.
type RatingAggregator interface {
	UpdateRatingAggregate(context context.Context, bookID string) error
}

// ActivityRecorder appends a record to the user's activity log.
type ActivityRecorder interface {
	Record(context context.Context, userID, bookID string, activityType activity.Type, details any) error
}

// Service implements review use cases.
type Service struct {
	repo       Repository
	aggregator RatingAggregator
	recorder   ActivityRecorder
	logger     *slog.Logger
}

// NewService constructs a review [Service].
func NewService(repo Repository, aggregator RatingAggregator, recorder ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
		recorder:   recorder,
		logger:     logger,
	}
}

// CreateInput holds the data to post a review.
type CreateInput struct {
	BookID        string
	Rating        float64
	Content       string
	IsRecommended bool
	HasSpoilers   bool
}

// Create posts a new review.
//
// One review per (user, book): a second post is a Conflict. Reviews are
// write-once, so there is no update path at all. Posting recomputes the
// book's aggregate rating and emits a "reviewed" activity record.
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, input.BookID).
		Custom(FieldRating, input.Rating < 1 || input.Rating > 5, "Must be between 1 and 5").
		Custom(FieldRating, input.Rating*2 != float64(int(input.Rating*2)), "Must be a whole or half star").
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetByUserAndBook(context, userID, input.BookID); err == nil {
		return nil, apperr.Conflict("You have already reviewed this book")
	}

	review := &Review{
		ID:            uuid.New(),
		UserID:        userID,
		BookID:        input.BookID,
		Rating:        input.Rating,
		Content:       input.Content,
		IsRecommended: input.IsRecommended,
		HasSpoilers:   input.HasSpoilers,
		CreatedAt:     time.Now(),
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	if err := service.aggregator.UpdateRatingAggregate(context, review.BookID); err != nil {
		service.logger.WarnContext(context, "rating_aggregate_failed",
			slog.String("book_id", review.BookID),
			slog.Any("error", err),
		)
	}

	if err := service.recorder.Record(context, userID, review.BookID, activity.TypeReviewed, map[string]any{
		"review_id": review.ID,
		"rating":    review.Rating,
	}); err != nil {
		service.logger.WarnContext(context, "activity_emit_failed",
			slog.String("review_id", review.ID),
			slog.Any("error", err),
		)
	}

	return review, nil
}

// Delete removes the author's own review and recomputes the book aggregate.
func (service *Service) Delete(context context.Context, userID, reviewID string) error {
	review, err := service.repo.GetByID(context, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return apperr.Forbidden("You can only delete your own reviews")
	}

	if err := service.repo.Delete(context, review.ID); err != nil {
		return err
	}

	if err := service.aggregator.UpdateRatingAggregate(context, review.BookID); err != nil {
		service.logger.WarnContext(context, "rating_aggregate_failed",
			slog.String("book_id", review.BookID),
			slog.Any("error", err),
		)
	}

	return nil
}

// ListForBook returns a page of a book's reviews, newest first.
func (service *Service) ListForBook(context context.Context, bookID, viewerID string, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListForBook(context, bookID, viewerID, limit, offset)
}

// ToggleLike flips the viewer's like on a review.
//
// The toggle is idempotent per state: liking an already-liked review just
// unlikes it, and retrying a request converges instead of double-counting.
func (service *Service) ToggleLike(context context.Context, userID, reviewID string) (*Review, error) {
	review, err := service.repo.GetByID(context, reviewID)
	if err != nil {
		return nil, err
	}

	likeCount, liked, err := service.repo.ToggleLike(context, review.ID, userID)
	if err != nil {
		return nil, err
	}

	review.LikeCount = likeCount
	review.LikedByViewer = liked

	return review, nil
}
