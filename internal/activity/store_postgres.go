// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// PostgresRepository implements the activity Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL activity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends a record to the log.
func (repository *PostgresRepository) Insert(context context.Context, record *Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, bookid, type, details, occurredat)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.LibraryActivity.Table)

	_, err := repository.db.Exec(context, query,
		record.ID, record.UserID, record.BookID, record.Type,
		record.Details, record.OccurredAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_activity_record")
	}

	return nil
}

// ListForUser returns a cursor page of records, newest first.
//
// Keyset pagination rides on the UUIDv7 primary key: IDs are time-ordered,
// so "id < cursor ORDER BY id DESC" walks the feed backwards in insertion
// order with a stable position even while new records are appended.
func (repository *PostgresRepository) ListForUser(context context.Context, userID string, publicOnly bool, afterID string, limit int) ([]*Record, error) {
	filter := fmt.Sprintf(`WHERE a.%s = $1`, schema.LibraryActivity.UserID)
	args := []any{userID}

	if publicOnly {
		// Visibility follows the originating library entry. Records whose
		// entry was removed stay visible only to the owner.
		filter += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s e
			WHERE e.%s = a.%s AND e.%s = a.%s AND e.%s = TRUE)`,
			schema.LibraryEntry.Table,
			schema.LibraryEntry.UserID, schema.LibraryActivity.UserID,
			schema.LibraryEntry.BookID, schema.LibraryActivity.BookID,
			schema.LibraryEntry.IsPublic,
		)
	}
	if afterID != "" {
		args = append(args, afterID)
		filter += fmt.Sprintf(` AND a.%s < $%d`, schema.LibraryActivity.ID, len(args))
	}

	query := fmt.Sprintf(`
		SELECT
			a.id, a.userid, a.bookid, a.type, a.details, a.occurredat,
			b.id, b.title, b.author, b.slug, COALESCE(b.coverurl, ''),
			b.ratingavg, b.ratingcount
		FROM %s a
		JOIN %s b ON b.%s = a.%s
		%s
		ORDER BY a.%s DESC
		LIMIT $%d`,
		schema.LibraryActivity.Table, schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.LibraryActivity.BookID,
		filter, schema.LibraryActivity.ID, len(args)+1,
	)
	args = append(args, limit)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_activity_records")
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		record := &Record{Book: &catalog.Book{}}
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.BookID, &record.Type,
			&record.Details, &record.OccurredAt,
			&record.Book.ID, &record.Book.Title, &record.Book.Author,
			&record.Book.Slug, &record.Book.CoverURL,
			&record.Book.RatingAvg, &record.Book.RatingCount,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_activity_record")
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
