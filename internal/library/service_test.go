// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// # Test Doubles

// fakeRepository is an in-memory library.Repository.
type fakeRepository struct {
	entries map[string]*library.Entry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]*library.Entry)}
}

func (f *fakeRepository) Create(_ context.Context, entry *library.Entry) error {
	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*library.Entry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, apperr.NotFound("Library entry")
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeRepository) GetByUserAndBook(_ context.Context, userID, bookID string) (*library.Entry, error) {
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.BookID == bookID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Library entry")
}

func (f *fakeRepository) Update(_ context.Context, entry *library.Entry) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return apperr.NotFound("Library entry")
	}
	copied := *entry
	f.entries[entry.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return apperr.NotFound("Library entry")
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeRepository) ListForUser(_ context.Context, userID string, publicOnly bool, status *library.Status, limit, offset int) ([]*library.Entry, int, error) {
	matched := make([]*library.Entry, 0)
	for _, entry := range f.entries {
		if entry.UserID != userID {
			continue
		}
		if publicOnly && !entry.IsPublic {
			continue
		}
		if status != nil && entry.Status != *status {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) CountFinishedInYear(_ context.Context, userID string, year int) (int, error) {
	count := 0
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.FinishedAt != nil && entry.FinishedAt.Year() == year {
			count++
		}
	}
	return count, nil
}

// fakeResolver returns a fixed book ID for any descriptor.
type fakeResolver struct {
	bookID string
}

func (f *fakeResolver) Resolve(_ context.Context, _ catalog.BookDescriptor) (string, error) {
	return f.bookID, nil
}

// recordedActivity captures one emission.
type recordedActivity struct {
	UserID string
	BookID string
	Type   activity.Type
}

// fakeRecorder collects activity emissions.
type fakeRecorder struct {
	records []recordedActivity
}

func (f *fakeRecorder) Record(_ context.Context, userID, bookID string, activityType activity.Type, _ any) error {
	f.records = append(f.records, recordedActivity{UserID: userID, BookID: bookID, Type: activityType})
	return nil
}

func (f *fakeRecorder) last(t *testing.T) recordedActivity {
	t.Helper()
	require.NotEmpty(t, f.records)
	return f.records[len(f.records)-1]
}

func newTestService() (*library.Service, *fakeRepository, *fakeRecorder) {
	repo := newFakeRepository()
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := library.NewService(repo, &fakeResolver{bookID: "book-1"}, recorder, logger)
	return service, repo, recorder
}

// # Entry Creation

/*
TestCreateEntry_EmitsAddedActivity verifies the happy path: entry persisted
with defaults and an "added" record emitted.
*/
func TestCreateEntry_EmitsAddedActivity(t *testing.T) {
	service, repo, recorder := newTestService()

	entry, err := service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		BookID: "book-1",
		Status: "want-to-read",
	})

	require.NoError(t, err)
	assert.Equal(t, library.StatusWantToRead, entry.Status)
	assert.True(t, entry.IsPublic, "entries default to public")
	assert.Len(t, repo.entries, 1)

	emitted := recorder.last(t)
	assert.Equal(t, activity.TypeAdded, emitted.Type)
	assert.Equal(t, "book-1", emitted.BookID)
}

/*
TestCreateEntry_DuplicateIsConflict verifies that adding the same book twice
is rejected with a Conflict rather than silently merged.
*/
func TestCreateEntry_DuplicateIsConflict(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		BookID: "book-1",
		Status: "want-to-read",
	})
	require.NoError(t, err)

	_, err = service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		BookID: "book-1",
		Status: "finished",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestCreateEntry_ResolvesDescriptor verifies that a descriptor input goes
through the resolver instead of requiring a book ID.
*/
func TestCreateEntry_ResolvesDescriptor(t *testing.T) {
	service, _, _ := newTestService()

	entry, err := service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		Descriptor: &catalog.BookDescriptor{Title: "Solaris", Author: "Stanisław Lem"},
		Status:     "currently-reading",
	})

	require.NoError(t, err)
	assert.Equal(t, "book-1", entry.BookID)
	require.NotNil(t, entry.StartedAt, "adding straight as reading stamps the start date")
}

/*
TestCreateEntry_NeitherBookNorDescriptor verifies the input contract.
*/
func TestCreateEntry_NeitherBookNorDescriptor(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		Status: "want-to-read",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Status Transitions

func createEntry(t *testing.T, service *library.Service, status string) *library.Entry {
	t.Helper()
	entry, err := service.CreateEntry(context.Background(), "user-1", library.CreateEntryInput{
		BookID: "book-1",
		Status: status,
	})
	require.NoError(t, err)
	return entry
}

/*
TestUpdateStatus_FirstStartEmitsStarted verifies that the first transition to
currently-reading emits "started" and stamps the start date.
*/
func TestUpdateStatus_FirstStartEmitsStarted(t *testing.T) {
	service, _, recorder := newTestService()
	entry := createEntry(t, service, "want-to-read")

	updated, err := service.UpdateStatus(context.Background(), "user-1", entry.ID, "currently-reading")

	require.NoError(t, err)
	require.NotNil(t, updated.StartedAt)
	assert.WithinDuration(t, time.Now(), *updated.StartedAt, time.Second)
	assert.Equal(t, activity.TypeStarted, recorder.last(t).Type)
}

/*
TestUpdateStatus_RestartEmitsUpdated verifies that re-entering
currently-reading with an existing start date is a plain update.
*/
func TestUpdateStatus_RestartEmitsUpdated(t *testing.T) {
	service, _, recorder := newTestService()
	entry := createEntry(t, service, "want-to-read")

	_, err := service.UpdateStatus(context.Background(), "user-1", entry.ID, "currently-reading")
	require.NoError(t, err)
	_, err = service.UpdateStatus(context.Background(), "user-1", entry.ID, "finished")
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), "user-1", entry.ID, "currently-reading")
	require.NoError(t, err)
	assert.Equal(t, activity.TypeUpdated, recorder.last(t).Type)
}

/*
TestUpdateStatus_FinishEmitsFinished verifies the finished transition and its
activity classification.
*/
func TestUpdateStatus_FinishEmitsFinished(t *testing.T) {
	service, _, recorder := newTestService()
	entry := createEntry(t, service, "currently-reading")

	updated, err := service.UpdateStatus(context.Background(), "user-1", entry.ID, "completed")

	require.NoError(t, err)
	assert.Equal(t, library.StatusFinished, updated.Status)
	require.NotNil(t, updated.FinishedAt)
	require.NotNil(t, updated.Progress)
	assert.Equal(t, 100, *updated.Progress)
	assert.Equal(t, activity.TypeFinished, recorder.last(t).Type)
}

/*
TestUpdateStatus_OtherUsersEntryIsNotFound verifies that ownership mismatches
surface as NotFound, not Forbidden.
*/
func TestUpdateStatus_OtherUsersEntryIsNotFound(t *testing.T) {
	service, _, _ := newTestService()
	entry := createEntry(t, service, "want-to-read")

	_, err := service.UpdateStatus(context.Background(), "user-2", entry.ID, "finished")

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Progress

/*
TestUpdateProgress_FullPromotesAndEmitsFinished verifies the 100-percent
promotion path end to end through the service.
*/
func TestUpdateProgress_FullPromotesAndEmitsFinished(t *testing.T) {
	service, _, recorder := newTestService()
	entry := createEntry(t, service, "currently-reading")

	updated, err := service.UpdateProgress(context.Background(), "user-1", entry.ID, 100)

	require.NoError(t, err)
	assert.Equal(t, library.StatusFinished, updated.Status)
	assert.Equal(t, activity.TypeFinished, recorder.last(t).Type)
}

/*
TestUpdateProgress_PartialEmitsUpdated verifies that a mid-book progress
update is a plain update.
*/
func TestUpdateProgress_PartialEmitsUpdated(t *testing.T) {
	service, _, recorder := newTestService()
	entry := createEntry(t, service, "currently-reading")

	updated, err := service.UpdateProgress(context.Background(), "user-1", entry.ID, 55)

	require.NoError(t, err)
	assert.Equal(t, library.StatusCurrentlyReading, updated.Status)
	assert.Equal(t, 55, *updated.Progress)
	assert.Equal(t, activity.TypeUpdated, recorder.last(t).Type)
}

/*
TestUpdateProgress_OutOfRange verifies the 0-100 bound.
*/
func TestUpdateProgress_OutOfRange(t *testing.T) {
	service, _, _ := newTestService()
	entry := createEntry(t, service, "currently-reading")

	for _, progress := range []int{-1, 101} {
		_, err := service.UpdateProgress(context.Background(), "user-1", entry.ID, progress)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

// # Rating

/*
TestUpdateRating_HalfStepGranularity verifies the 1-5 half-star rule.
*/
func TestUpdateRating_HalfStepGranularity(t *testing.T) {
	service, _, _ := newTestService()
	entry := createEntry(t, service, "finished")

	for _, valid := range []float64{1, 2.5, 3.5, 5} {
		rating := valid
		_, err := service.UpdateRating(context.Background(), "user-1", entry.ID, &rating)
		assert.NoError(t, err, "rating %v should be accepted", valid)
	}

	for _, invalid := range []float64{0, 0.5, 5.5, 3.3} {
		rating := invalid
		_, err := service.UpdateRating(context.Background(), "user-1", entry.ID, &rating)
		require.Error(t, err, "rating %v should be rejected", invalid)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

/*
TestUpdateRating_ClearWithNil verifies that a nil rating clears the field.
*/
func TestUpdateRating_ClearWithNil(t *testing.T) {
	service, _, _ := newTestService()
	entry := createEntry(t, service, "finished")

	rating := 4.0
	_, err := service.UpdateRating(context.Background(), "user-1", entry.ID, &rating)
	require.NoError(t, err)

	updated, err := service.UpdateRating(context.Background(), "user-1", entry.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.Rating)
}

// # Removal

/*
TestRemoveEntry_DoesNotEmitActivity verifies that removal is silent: no
activity record, existing records retained.
*/
func TestRemoveEntry_DoesNotEmitActivity(t *testing.T) {
	service, repo, recorder := newTestService()
	entry := createEntry(t, service, "want-to-read")
	emittedBefore := len(recorder.records)

	err := service.RemoveEntry(context.Background(), "user-1", entry.ID)

	require.NoError(t, err)
	assert.Empty(t, repo.entries)
	assert.Len(t, recorder.records, emittedBefore, "removal must not emit activity")
}
