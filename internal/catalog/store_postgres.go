// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/pkg/slug"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

// PostgresRepository implements the catalog Repository interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookColumns = `
	id, title, author, slug, COALESCE(coverurl, ''), COALESCE(description, ''),
	COALESCE(publisher, ''), COALESCE(publisheddate, ''), COALESCE(pagecount, 0),
	COALESCE(externalid, ''), COALESCE(language, ''), ratingavg, ratingcount, createdat`

// GetByID returns the book with the given primary key, genres included.
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.ID)

	return repository.getOne(context, query, id)
}

// GetBySlug returns the book with the given URL slug, genres included.
func (repository *PostgresRepository) GetBySlug(context context.Context, bookSlug string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.Slug)

	return repository.getOne(context, query, bookSlug)
}

// FindByExternalID returns the book carrying the given external identifier.
func (repository *PostgresRepository) FindByExternalID(context context.Context, externalID string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.ExternalID)

	return repository.getOne(context, query, externalID)
}

// FindByTitleAuthor returns the book matching the exact (title, author) pair.
//
// The match is case-sensitive on purpose: "IT" and "It" are different works.
func (repository *PostgresRepository) FindByTitleAuthor(context context.Context, title, author string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Author)

	book := &Book{}
	err := repository.db.QueryRow(context, query, title, author).Scan(scanTargets(book)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "find_book_by_title_author")
	}

	if err := repository.attachGenres(context, book); err != nil {
		return nil, err
	}

	return book, nil
}

// CreateWithGenres inserts a new book plus its genre links in one transaction.
//
// Genre records are created on first use and reused afterwards; the whole
// resolution is atomic so a failure partway leaves no orphaned rows.
func (repository *PostgresRepository) CreateWithGenres(context context.Context, book *Book, genreNames []string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_book")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}

	insertBook := fmt.Sprintf(`
		INSERT INTO %s (id, title, author, slug, coverurl, description, publisher,
			publisheddate, pagecount, externalid, language, ratingavg, ratingcount, createdat)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, 0), NULLIF($10, ''), NULLIF($11, ''), 0, 0, $12)`,
		schema.CatalogBook.Table)

	if _, err := transaction.Exec(context, insertBook,
		book.ID, book.Title, book.Author, book.Slug, book.CoverURL, book.Description,
		book.Publisher, book.PublishedDate, book.PageCount, book.ExternalID,
		book.Language, book.CreatedAt,
	); err != nil {
		return dberr.Wrap(err, "insert_book")
	}

	for _, name := range genreNames {
		genreID, err := upsertGenre(context, transaction, name)
		if err != nil {
			return err
		}

		linkGenre := fmt.Sprintf(`
			INSERT INTO %s (bookid, genreid) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			schema.CatalogBookGenre.Table)

		if _, err := transaction.Exec(context, linkGenre, book.ID, genreID); err != nil {
			return dberr.Wrap(err, "link_book_genre")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_book")
	}

	return nil
}

// List returns a page of the catalog ordered by creation time descending.
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Book, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogBook.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		bookColumns, schema.CatalogBook.Table, schema.CatalogBook.CreatedAt)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(scanTargets(book)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, rows.Err()
}

// ListGenres returns every genre ordered by name.
func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}

// UpdateRatingAggregate recomputes the book's rating average and count from
// its reviews.
func (repository *PostgresRepository) UpdateRatingAggregate(context context.Context, bookID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			ratingavg = COALESCE((SELECT AVG(rating) FROM %s WHERE bookid = $1), 0),
			ratingcount = (SELECT COUNT(*) FROM %s WHERE bookid = $1)
		WHERE id = $1`,
		schema.CatalogBook.Table, schema.SocialReview.Table, schema.SocialReview.Table)

	if _, err := repository.db.Exec(context, query, bookID); err != nil {
		return dberr.Wrap(err, "update_rating_aggregate")
	}

	return nil
}

// upsertGenre creates a genre on first use or returns the existing row's ID.
func upsertGenre(context context.Context, transaction pgx.Tx, name string) (string, error) {
	selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	var genreID string
	err := transaction.QueryRow(context, selectQuery, name).Scan(&genreID)
	if err == nil {
		return genreID, nil
	}
	if err != pgx.ErrNoRows {
		return "", dberr.Wrap(err, "find_genre")
	}

	genreID = uuid.New()
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, name, slug, createdat) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	if err := transaction.QueryRow(context, insertQuery, genreID, name, slug.From(name), time.Now()).Scan(&genreID); err != nil {
		return "", dberr.Wrap(err, "insert_genre")
	}

	return genreID, nil
}

// getOne runs a single-row book query and hydrates genres.
func (repository *PostgresRepository) getOne(context context.Context, query, arg string) (*Book, error) {
	book := &Book{}
	err := repository.db.QueryRow(context, query, arg).Scan(scanTargets(book)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "get_book")
	}

	if err := repository.attachGenres(context, book); err != nil {
		return nil, err
	}

	return book, nil
}

// attachGenres loads the genre rows linked to a book.
func (repository *PostgresRepository) attachGenres(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s
		FROM %s g
		JOIN %s bg ON bg.%s = g.%s
		WHERE bg.%s = $1
		ORDER BY g.%s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogBookGenre.Table,
		schema.CatalogBookGenre.GenreID, schema.CatalogGenre.ID,
		schema.CatalogBookGenre.BookID, schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(context, query, book.ID)
	if err != nil {
		return dberr.Wrap(err, "list_book_genres")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		genre := Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_book_genre")
		}
		genres = append(genres, genre)
	}

	book.Genres = genres
	return rows.Err()
}

// scanTargets returns the scan destinations matching bookColumns order.
func scanTargets(book *Book) []any {
	return []any{
		&book.ID, &book.Title, &book.Author, &book.Slug, &book.CoverURL,
		&book.Description, &book.Publisher, &book.PublishedDate, &book.PageCount,
		&book.ExternalID, &book.Language, &book.RatingAvg, &book.RatingCount,
		&book.CreatedAt,
	}
}
