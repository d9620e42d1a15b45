// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// fakeRepository is an in-memory catalog.Repository. When raceBook is set,
// CreateWithGenres fails with a unique violation and raceBook becomes
// visible, simulating a concurrent resolve winning the insert race.
type fakeRepository struct {
	books    []*catalog.Book
	raceBook *catalog.Book
	creates  int
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*catalog.Book, error) {
	for _, book := range f.books {
		if book.ID == id {
			return book, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*catalog.Book, error) {
	for _, book := range f.books {
		if book.Slug == slug {
			return book, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (f *fakeRepository) FindByExternalID(_ context.Context, externalID string) (*catalog.Book, error) {
	for _, book := range f.books {
		if book.ExternalID == externalID {
			return book, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (f *fakeRepository) FindByTitleAuthor(_ context.Context, title, author string) (*catalog.Book, error) {
	for _, book := range f.books {
		if book.Title == title && book.Author == author {
			return book, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (f *fakeRepository) CreateWithGenres(_ context.Context, book *catalog.Book, _ []string) error {
	f.creates++
	if f.raceBook != nil {
		f.books = append(f.books, f.raceBook)
		f.raceBook = nil
		return dberr.Wrap(&pgconn.PgError{Code: "23505"}, "insert_book")
	}
	f.books = append(f.books, book)
	return nil
}

func (f *fakeRepository) List(_ context.Context, _, _ int) ([]*catalog.Book, int, error) {
	return f.books, len(f.books), nil
}

func (f *fakeRepository) ListGenres(_ context.Context) ([]*catalog.Genre, error) {
	return nil, nil
}

func (f *fakeRepository) UpdateRatingAggregate(_ context.Context, _ string) error {
	return nil
}

func newTestService(repo *fakeRepository) *catalog.Service {
	return catalog.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestResolve_ReusesByExternalID verifies that a descriptor carrying a known
external identifier reuses the existing canonical book.
*/
func TestResolve_ReusesByExternalID(t *testing.T) {
	repo := &fakeRepository{books: []*catalog.Book{
		{ID: "existing", Title: "Dune", Author: "Frank Herbert", ExternalID: "vol-123"},
	}}
	service := newTestService(repo)

	bookID, err := service.Resolve(context.Background(), catalog.BookDescriptor{
		Title:      "Dune (Deluxe Edition)", // differing title must not matter
		Author:     "Frank Herbert",
		ExternalID: "vol-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "existing", bookID)
	assert.Zero(t, repo.creates)
}

/*
TestResolve_ReusesByTitleAuthor verifies the exact-match fallback for manual
entries without an external identifier.
*/
func TestResolve_ReusesByTitleAuthor(t *testing.T) {
	repo := &fakeRepository{books: []*catalog.Book{
		{ID: "existing", Title: "Dune", Author: "Frank Herbert"},
	}}
	service := newTestService(repo)

	bookID, err := service.Resolve(context.Background(), catalog.BookDescriptor{
		Title:  "Dune",
		Author: "Frank Herbert",
	})

	require.NoError(t, err)
	assert.Equal(t, "existing", bookID)
	assert.Zero(t, repo.creates)
}

/*
TestResolve_TitleMatchIsCaseSensitive verifies that differently-cased titles
resolve to distinct canonical books.
*/
func TestResolve_TitleMatchIsCaseSensitive(t *testing.T) {
	repo := &fakeRepository{books: []*catalog.Book{
		{ID: "existing", Title: "It", Author: "Stephen King"},
	}}
	service := newTestService(repo)

	bookID, err := service.Resolve(context.Background(), catalog.BookDescriptor{
		Title:  "IT",
		Author: "Stephen King",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "existing", bookID)
	assert.Equal(t, 1, repo.creates)
}

/*
TestResolve_CreatesNewBook verifies the insert path for a first-seen book.
*/
func TestResolve_CreatesNewBook(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	bookID, err := service.Resolve(context.Background(), catalog.BookDescriptor{
		Title:  "Solaris",
		Author: "Stanisław Lem",
		Genres: []string{"Science Fiction"},
	})

	require.NoError(t, err)
	require.Len(t, repo.books, 1)
	assert.Equal(t, repo.books[0].ID, bookID)
	assert.NotEmpty(t, repo.books[0].Slug)
}

/*
TestResolve_RecoversLostRace verifies that a unique violation on insert is
resolved by re-reading the winner's row instead of surfacing a conflict.
*/
func TestResolve_RecoversLostRace(t *testing.T) {
	// The "concurrent" winner appears between our lookup miss and our insert.
	winner := &catalog.Book{ID: "winner", Title: "Solaris", Author: "Stanisław Lem"}
	repo := &fakeRepository{raceBook: winner}
	service := newTestService(repo)

	bookID, err := service.Resolve(context.Background(), catalog.BookDescriptor{
		Title:  "Solaris",
		Author: "Stanisław Lem",
	})

	require.NoError(t, err)
	assert.Equal(t, "winner", bookID)
}

/*
TestResolve_RequiresTitleAndAuthor verifies the resolver's minimal input
contract.
*/
func TestResolve_RequiresTitleAndAuthor(t *testing.T) {
	service := newTestService(&fakeRepository{})

	tests := []struct {
		name       string
		descriptor catalog.BookDescriptor
	}{
		{"missing_title", catalog.BookDescriptor{Author: "Frank Herbert"}},
		{"missing_author", catalog.BookDescriptor{Title: "Dune"}},
		{"negative_pages", catalog.BookDescriptor{Title: "Dune", Author: "Frank Herbert", PageCount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Resolve(context.Background(), tt.descriptor)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}
