// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package shelf

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// PostgresRepository implements the shelf Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL shelf repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new shelf.
func (repository *PostgresRepository) Create(context context.Context, shelf *Shelf) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, name, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.LibraryShelf.Table)

	_, err := repository.db.Exec(context, query,
		shelf.ID, shelf.UserID, shelf.Name, shelf.CreatedAt, shelf.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_shelf")
	}

	return nil
}

// GetByID returns the shelf with its books hydrated.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Shelf, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s,
			(SELECT COUNT(*) FROM %s WHERE %s = $1)
		FROM %s WHERE %s = $1`,
		schema.LibraryShelf.ID, schema.LibraryShelf.UserID, schema.LibraryShelf.Name,
		schema.LibraryShelf.CreatedAt, schema.LibraryShelf.UpdatedAt,
		schema.LibraryShelfBook.Table, schema.LibraryShelfBook.ShelfID,
		schema.LibraryShelf.Table, schema.LibraryShelf.ID)

	shelf := &Shelf{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&shelf.ID, &shelf.UserID, &shelf.Name,
		&shelf.CreatedAt, &shelf.UpdatedAt, &shelf.BookCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Shelf")
		}
		return nil, dberr.Wrap(err, "get_shelf")
	}

	if err := repository.attachBooks(context, shelf); err != nil {
		return nil, err
	}

	return shelf, nil
}

// Rename updates the shelf's name.
func (repository *PostgresRepository) Rename(context context.Context, id, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.LibraryShelf.Table, schema.LibraryShelf.Name,
		schema.LibraryShelf.UpdatedAt, schema.LibraryShelf.ID)

	tag, err := repository.db.Exec(context, query, id, name, time.Now())
	if err != nil {
		return dberr.Wrap(err, "rename_shelf")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Shelf")
	}

	return nil
}

// Delete hard-deletes a shelf. Book links follow via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryShelf.Table, schema.LibraryShelf.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_shelf")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Shelf")
	}

	return nil
}

// ListForUser returns all of a user's shelves with book counts.
func (repository *PostgresRepository) ListForUser(context context.Context, userID string) ([]*Shelf, error) {
	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, COUNT(sb.%s)
		FROM %s s
		LEFT JOIN %s sb ON sb.%s = s.%s
		WHERE s.%s = $1
		GROUP BY s.%s
		ORDER BY s.%s ASC`,
		schema.LibraryShelf.ID, schema.LibraryShelf.UserID, schema.LibraryShelf.Name,
		schema.LibraryShelf.CreatedAt, schema.LibraryShelf.UpdatedAt,
		schema.LibraryShelfBook.BookID,
		schema.LibraryShelf.Table, schema.LibraryShelfBook.Table,
		schema.LibraryShelfBook.ShelfID, schema.LibraryShelf.ID,
		schema.LibraryShelf.UserID, schema.LibraryShelf.ID, schema.LibraryShelf.Name)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_shelves")
	}
	defer rows.Close()

	shelves := make([]*Shelf, 0)
	for rows.Next() {
		shelf := &Shelf{}
		if err := rows.Scan(
			&shelf.ID, &shelf.UserID, &shelf.Name,
			&shelf.CreatedAt, &shelf.UpdatedAt, &shelf.BookCount,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_shelf")
		}
		shelves = append(shelves, shelf)
	}

	return shelves, rows.Err()
}

// AddBook links a book to a shelf, idempotently.
func (repository *PostgresRepository) AddBook(context context.Context, shelfID, bookID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (shelfid, bookid, addedat) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		schema.LibraryShelfBook.Table)

	if _, err := repository.db.Exec(context, query, shelfID, bookID, time.Now()); err != nil {
		return dberr.Wrap(err, "add_shelf_book")
	}

	return nil
}

// RemoveBook unlinks a book from a shelf.
func (repository *PostgresRepository) RemoveBook(context context.Context, shelfID, bookID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryShelfBook.Table,
		schema.LibraryShelfBook.ShelfID, schema.LibraryShelfBook.BookID)

	tag, err := repository.db.Exec(context, query, shelfID, bookID)
	if err != nil {
		return dberr.Wrap(err, "remove_shelf_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book on shelf")
	}

	return nil
}

// attachBooks loads the catalog rows linked to a shelf, insertion order.
func (repository *PostgresRepository) attachBooks(context context.Context, shelf *Shelf) error {
	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.author, b.slug, COALESCE(b.coverurl, ''),
			b.ratingavg, b.ratingcount
		FROM %s b
		JOIN %s sb ON sb.%s = b.id
		WHERE sb.%s = $1
		ORDER BY sb.%s ASC`,
		schema.CatalogBook.Table, schema.LibraryShelfBook.Table,
		schema.LibraryShelfBook.BookID, schema.LibraryShelfBook.ShelfID,
		schema.LibraryShelfBook.AddedAt)

	rows, err := repository.db.Query(context, query, shelf.ID)
	if err != nil {
		return dberr.Wrap(err, "list_shelf_books")
	}
	defer rows.Close()

	books := make([]*catalog.Book, 0)
	for rows.Next() {
		book := &catalog.Book{}
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Slug,
			&book.CoverURL, &book.RatingAvg, &book.RatingCount,
		); err != nil {
			return dberr.Wrap(err, "scan_shelf_book")
		}
		books = append(books, book)
	}

	shelf.Books = books
	return rows.Err()
}
