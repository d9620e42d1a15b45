// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package activity_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// fakeRepository is an in-memory append-only activity.Repository. Records are
// kept newest first, mirroring the store's ORDER BY id DESC. The public flag
// per (user, book) stands in for the originating library entry's visibility.
type fakeRepository struct {
	records []*activity.Record
	public  map[string]bool // userID+"/"+bookID -> entry is public
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{public: make(map[string]bool)}
}

func (f *fakeRepository) Insert(_ context.Context, record *activity.Record) error {
	f.records = append([]*activity.Record{record}, f.records...)
	return nil
}

func (f *fakeRepository) ListForUser(_ context.Context, userID string, publicOnly bool, afterID string, limit int) ([]*activity.Record, error) {
	page := make([]*activity.Record, 0)
	passed := afterID == ""
	for _, record := range f.records {
		if record.ID == afterID {
			passed = true
			continue
		}
		if !passed || record.UserID != userID {
			continue
		}
		if publicOnly && !f.public[record.UserID+"/"+record.BookID] {
			continue
		}
		page = append(page, record)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

/*
TestRecord_SerializesDetails verifies that arbitrary detail payloads are
stored as JSON and that each record gets its own identity.
*/
func TestRecord_SerializesDetails(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	err := service.Record(context.Background(), "user-1", "book-1", activity.TypeFinished, map[string]any{
		"previous_status": "currently-reading",
	})

	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	record := repo.records[0]
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, activity.TypeFinished, record.Type)
	assert.False(t, record.OccurredAt.IsZero())

	var details map[string]string
	require.NoError(t, json.Unmarshal(record.Details, &details))
	assert.Equal(t, "currently-reading", details["previous_status"])
}

/*
TestRecord_NilDetails verifies that a record without a payload stores no
details at all instead of the JSON literal "null".
*/
func TestRecord_NilDetails(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	err := service.Record(context.Background(), "user-1", "book-1", activity.TypeAdded, nil)

	require.NoError(t, err)
	require.Len(t, repo.records, 1)
	assert.Nil(t, repo.records[0].Details)
}

/*
TestListForViewer_OwnerSeesFullHistory verifies that owners are not subject
to the public-entry filter.
*/
func TestListForViewer_OwnerSeesFullHistory(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	require.NoError(t, service.Record(context.Background(), "user-1", "private-book", activity.TypeAdded, nil))
	require.NoError(t, service.Record(context.Background(), "user-1", "public-book", activity.TypeAdded, nil))
	repo.public["user-1/public-book"] = true

	records, _, err := service.ListForViewer(context.Background(), "user-1", "user-1", pagination.CursorParams{Limit: 10})

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

/*
TestListForViewer_OtherViewerSeesPublicOnly verifies the visibility filter
for non-owners, including anonymous viewers.
*/
func TestListForViewer_OtherViewerSeesPublicOnly(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	require.NoError(t, service.Record(context.Background(), "user-1", "private-book", activity.TypeAdded, nil))
	require.NoError(t, service.Record(context.Background(), "user-1", "public-book", activity.TypeFinished, nil))
	repo.public["user-1/public-book"] = true

	for _, viewerID := range []string{"user-2", ""} {
		records, _, err := service.ListForViewer(context.Background(), viewerID, "user-1", pagination.CursorParams{Limit: 10})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "public-book", records[0].BookID)
	}
}

/*
TestListForViewer_CursorWalksFeed verifies the fetch-one-extra paging scheme:
full pages report has_more with a next cursor, and following the cursors
walks the whole feed exactly once.
*/
func TestListForViewer_CursorWalksFeed(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	for i := 0; i < 5; i++ {
		require.NoError(t, service.Record(context.Background(), "user-1", fmt.Sprintf("book-%d", i), activity.TypeAdded, nil))
	}

	firstPage, meta, err := service.ListForViewer(context.Background(), "user-1", "user-1", pagination.CursorParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, firstPage, 2)
	assert.True(t, meta.HasMore)
	require.NotEmpty(t, meta.NextCursor)

	secondPage, meta, err := service.ListForViewer(context.Background(), "user-1", "user-1", pagination.CursorParams{
		After: pagination.DecodeCursor(meta.NextCursor),
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, secondPage, 2)
	assert.True(t, meta.HasMore)

	lastPage, meta, err := service.ListForViewer(context.Background(), "user-1", "user-1", pagination.CursorParams{
		After: pagination.DecodeCursor(meta.NextCursor),
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, lastPage, 1)
	assert.False(t, meta.HasMore)
	assert.Empty(t, meta.NextCursor)

	seen := make(map[string]bool)
	for _, record := range append(append(firstPage, secondPage...), lastPage...) {
		assert.False(t, seen[record.ID], "record %s paged twice", record.ID)
		seen[record.ID] = true
	}
	assert.Len(t, seen, 5)
}

/*
TestListForViewer_ExactPageBoundary verifies that a feed whose size is an
exact multiple of the limit does not report a phantom extra page.
*/
func TestListForViewer_ExactPageBoundary(t *testing.T) {
	repo := newFakeRepository()
	service := activity.NewService(repo)

	require.NoError(t, service.Record(context.Background(), "user-1", "book-0", activity.TypeAdded, nil))
	require.NoError(t, service.Record(context.Background(), "user-1", "book-1", activity.TypeAdded, nil))

	records, meta, err := service.ListForViewer(context.Background(), "user-1", "user-1", pagination.CursorParams{Limit: 2})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.False(t, meta.HasMore)
	assert.Empty(t, meta.NextCursor)
}
