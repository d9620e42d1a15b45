// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// PostgresRepository implements the library Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL library repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `
	id, userid, bookid, status, progress, rating, COALESCE(notes, ''),
	ispublic, startedat, finishedat, createdat, updatedat`

// Create persists a new entry. A duplicate (user, book) pair surfaces as a
// Conflict through the unique constraint.
func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, bookid, status, progress, rating, notes,
			ispublic, startedat, finishedat, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)`,
		schema.LibraryEntry.Table)

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.UserID, entry.BookID, entry.Status, entry.Progress,
		entry.Rating, entry.Notes, entry.IsPublic, entry.StartedAt,
		entry.FinishedAt, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_library_entry")
	}

	return nil
}

// GetByID returns the entry with the given primary key.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		entryColumns, schema.LibraryEntry.Table, schema.LibraryEntry.ID)

	return repository.getOne(context, query, id)
}

// GetByUserAndBook returns the entry for the (user, book) pair.
func (repository *PostgresRepository) GetByUserAndBook(context context.Context, userID, bookID string) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns, schema.LibraryEntry.Table,
		schema.LibraryEntry.UserID, schema.LibraryEntry.BookID)

	entry := &Entry{}
	err := repository.db.QueryRow(context, query, userID, bookID).Scan(entryScanTargets(entry)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Library entry")
		}
		return nil, dberr.Wrap(err, "get_library_entry_by_pair")
	}

	return entry, nil
}

// Update persists all mutable fields of an entry.
func (repository *PostgresRepository) Update(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			status = $2, progress = $3, rating = $4, notes = NULLIF($5, ''),
			ispublic = $6, startedat = $7, finishedat = $8, updatedat = $9
		WHERE %s = $1`,
		schema.LibraryEntry.Table, schema.LibraryEntry.ID)

	tag, err := repository.db.Exec(context, query,
		entry.ID, entry.Status, entry.Progress, entry.Rating, entry.Notes,
		entry.IsPublic, entry.StartedAt, entry.FinishedAt, entry.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_library_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}

	return nil
}

// Delete hard-deletes an entry. Activity records are intentionally untouched.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryEntry.Table, schema.LibraryEntry.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_library_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}

	return nil
}

// ListForUser returns a page of a user's entries, newest first, with the
// canonical book hydrated onto each row.
func (repository *PostgresRepository) ListForUser(context context.Context, userID string, publicOnly bool, status *Status, limit, offset int) ([]*Entry, int, error) {
	filter := fmt.Sprintf(`WHERE e.%s = $1`, schema.LibraryEntry.UserID)
	args := []any{userID}

	if publicOnly {
		filter += fmt.Sprintf(` AND e.%s = TRUE`, schema.LibraryEntry.IsPublic)
	}
	if status != nil {
		args = append(args, *status)
		filter += fmt.Sprintf(` AND e.%s = $%d`, schema.LibraryEntry.Status, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s e %s`, schema.LibraryEntry.Table, filter)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_library_entries")
	}

	query := fmt.Sprintf(`
		SELECT
			e.id, e.userid, e.bookid, e.status, e.progress, e.rating,
			COALESCE(e.notes, ''), e.ispublic, e.startedat, e.finishedat,
			e.createdat, e.updatedat,
			b.id, b.title, b.author, b.slug, COALESCE(b.coverurl, ''),
			b.ratingavg, b.ratingcount
		FROM %s e
		JOIN %s b ON b.%s = e.%s
		%s
		ORDER BY e.%s DESC
		LIMIT $%d OFFSET $%d`,
		schema.LibraryEntry.Table, schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.LibraryEntry.BookID,
		filter, schema.LibraryEntry.UpdatedAt, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_library_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{Book: &catalog.Book{}}
		targets := entryScanTargets(entry)
		targets = append(targets,
			&entry.Book.ID, &entry.Book.Title, &entry.Book.Author, &entry.Book.Slug,
			&entry.Book.CoverURL, &entry.Book.RatingAvg, &entry.Book.RatingCount,
		)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_library_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// CountFinishedInYear counts entries finished within a calendar year.
func (repository *PostgresRepository) CountFinishedInYear(context context.Context, userID string, year int) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE %s = $1 AND %s IS NOT NULL AND EXTRACT(YEAR FROM %s) = $2`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID,
		schema.LibraryEntry.FinishedAt, schema.LibraryEntry.FinishedAt)

	var count int
	if err := repository.db.QueryRow(context, query, userID, year).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_finished_entries")
	}

	return count, nil
}

// getOne runs a single-row entry query.
func (repository *PostgresRepository) getOne(context context.Context, query, arg string) (*Entry, error) {
	entry := &Entry{}
	err := repository.db.QueryRow(context, query, arg).Scan(entryScanTargets(entry)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Library entry")
		}
		return nil, dberr.Wrap(err, "get_library_entry")
	}

	return entry, nil
}

// entryScanTargets returns the scan destinations matching entryColumns order.
func entryScanTargets(entry *Entry) []any {
	return []any{
		&entry.ID, &entry.UserID, &entry.BookID, &entry.Status, &entry.Progress,
		&entry.Rating, &entry.Notes, &entry.IsPublic, &entry.StartedAt,
		&entry.FinishedAt, &entry.CreatedAt, &entry.UpdatedAt,
	}
}
