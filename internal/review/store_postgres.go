// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package review

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// PostgresRepository implements the review Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `
	id, userid, bookid, rating, content, isrecommended, hasspoilers,
	likecount, createdat`

// Create persists a new review.
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, bookid, rating, content, isrecommended,
			hasspoilers, likecount, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)`,
		schema.SocialReview.Table)

	_, err := repository.db.Exec(context, query,
		review.ID, review.UserID, review.BookID, review.Rating, review.Content,
		review.IsRecommended, review.HasSpoilers, review.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_review")
	}

	return nil
}

// GetByID returns the review with the given primary key.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		reviewColumns, schema.SocialReview.Table, schema.SocialReview.ID)

	return repository.getOne(context, query, id)
}

// GetByUserAndBook returns the review for the (user, book) pair.
func (repository *PostgresRepository) GetByUserAndBook(context context.Context, userID, bookID string) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		reviewColumns, schema.SocialReview.Table,
		schema.SocialReview.UserID, schema.SocialReview.BookID)

	review := &Review{}
	err := repository.db.QueryRow(context, query, userID, bookID).Scan(reviewScanTargets(review)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review_by_pair")
	}

	return review, nil
}

// Delete hard-deletes a review. Like rows follow via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// ListForBook returns a page of a book's reviews, newest first.
func (repository *PostgresRepository) ListForBook(context context.Context, bookID, viewerID string, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.BookID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, bookID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	// NULLIF keeps the like-probe a no-op for anonymous viewers.
	query := fmt.Sprintf(`
		SELECT
			r.id, r.userid, r.bookid, r.rating, r.content, r.isrecommended,
			r.hasspoilers, r.likecount, r.createdat,
			EXISTS (
				SELECT 1 FROM %s l
				WHERE l.%s = r.%s AND l.%s = NULLIF($2, '')
			)
		FROM %s r
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $3 OFFSET $4`,
		schema.SocialReviewLike.Table,
		schema.SocialReviewLike.ReviewID, schema.SocialReview.ID,
		schema.SocialReviewLike.UserID,
		schema.SocialReview.Table, schema.SocialReview.BookID,
		schema.SocialReview.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, bookID, viewerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review := &Review{}
		targets := append(reviewScanTargets(review), &review.LikedByViewer)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, rows.Err()
}

// ToggleLike flips the viewer's like on a review.
//
// Insert-or-delete on the join table and the counter update run in one
// transaction, so the denormalized likecount can never drift from the join
// rows, and repeating a request lands back on the same state instead of
// incrementing twice.
func (repository *PostgresRepository) ToggleLike(context context.Context, reviewID, userID string) (int, bool, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return 0, false, dberr.Wrap(err, "begin_toggle_like")
	}
	defer func() { _ = transaction.Rollback(context) }()

	insert := fmt.Sprintf(`
		INSERT INTO %s (userid, reviewid, createdat) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		schema.SocialReviewLike.Table)

	tag, err := transaction.Exec(context, insert, userID, reviewID, time.Now())
	if err != nil {
		return 0, false, dberr.Wrap(err, "insert_review_like")
	}

	liked := tag.RowsAffected() == 1
	if !liked {
		remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.SocialReviewLike.Table,
			schema.SocialReviewLike.UserID, schema.SocialReviewLike.ReviewID)

		if _, err := transaction.Exec(context, remove, userID, reviewID); err != nil {
			return 0, false, dberr.Wrap(err, "delete_review_like")
		}
	}

	// Recompute from the join table rather than incrementing.
	update := fmt.Sprintf(`
		UPDATE %s SET %s = (SELECT COUNT(*) FROM %s WHERE %s = $1)
		WHERE %s = $1
		RETURNING %s`,
		schema.SocialReview.Table, schema.SocialReview.LikeCount,
		schema.SocialReviewLike.Table, schema.SocialReviewLike.ReviewID,
		schema.SocialReview.ID, schema.SocialReview.LikeCount)

	var likeCount int
	if err := transaction.QueryRow(context, update, reviewID).Scan(&likeCount); err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, apperr.NotFound("Review")
		}
		return 0, false, dberr.Wrap(err, "update_like_count")
	}

	if err := transaction.Commit(context); err != nil {
		return 0, false, dberr.Wrap(err, "commit_toggle_like")
	}

	return likeCount, liked, nil
}

// getOne runs a single-row review query.
func (repository *PostgresRepository) getOne(context context.Context, query, arg string) (*Review, error) {
	review := &Review{}
	err := repository.db.QueryRow(context, query, arg).Scan(reviewScanTargets(review)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return review, nil
}

// reviewScanTargets returns the scan destinations matching reviewColumns order.
func reviewScanTargets(review *Review) []any {
	return []any{
		&review.ID, &review.UserID, &review.BookID, &review.Rating,
		&review.Content, &review.IsRecommended, &review.HasSpoilers,
		&review.LikeCount, &review.CreatedAt,
	}
}
