// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

/*
TestApplyStatus_StartReading verifies that entering currently-reading stamps
the start date exactly once.
*/
func TestApplyStatus_StartReading(t *testing.T) {
	now := time.Now()
	entry := &library.Entry{Status: library.StatusWantToRead}

	change, startedNow := entry.ApplyStatus(library.StatusCurrentlyReading, now)

	assert.True(t, startedNow)
	assert.Equal(t, library.StatusCurrentlyReading, entry.Status)
	require.NotNil(t, entry.StartedAt)
	assert.Equal(t, now, *entry.StartedAt)
	require.NotNil(t, change.StartedAt)
	assert.Equal(t, now, *change.StartedAt)
}

/*
TestApplyStatus_RereadKeepsOriginalStartDate verifies that a finished book
moved back to currently-reading keeps its original start date.
*/
func TestApplyStatus_RereadKeepsOriginalStartDate(t *testing.T) {
	firstStart := time.Now().Add(-30 * 24 * time.Hour)
	entry := &library.Entry{
		Status:    library.StatusFinished,
		StartedAt: pointer.To(firstStart),
	}

	change, startedNow := entry.ApplyStatus(library.StatusCurrentlyReading, time.Now())

	assert.False(t, startedNow)
	assert.Equal(t, firstStart, *entry.StartedAt)
	assert.Nil(t, change.StartedAt)
}

/*
TestApplyStatus_Finish verifies the finished transition: finish date stamped
once, progress forced to 100.
*/
func TestApplyStatus_Finish(t *testing.T) {
	now := time.Now()
	entry := &library.Entry{
		Status:    library.StatusCurrentlyReading,
		StartedAt: pointer.To(now.Add(-time.Hour)),
		Progress:  pointer.To(40),
	}

	change, _ := entry.ApplyStatus(library.StatusFinished, now)

	assert.Equal(t, library.StatusFinished, entry.Status)
	require.NotNil(t, entry.FinishedAt)
	assert.Equal(t, now, *entry.FinishedAt)
	require.NotNil(t, entry.Progress)
	assert.Equal(t, 100, *entry.Progress)
	require.NotNil(t, change.Progress)
	assert.Equal(t, 100, *change.Progress)
}

/*
TestApplyStatus_RefinishKeepsOriginalFinishDate verifies that finishing an
already-finished entry does not move the finish date.
*/
func TestApplyStatus_RefinishKeepsOriginalFinishDate(t *testing.T) {
	firstFinish := time.Now().Add(-7 * 24 * time.Hour)
	entry := &library.Entry{
		Status:     library.StatusFinished,
		FinishedAt: pointer.To(firstFinish),
		Progress:   pointer.To(100),
	}

	change, _ := entry.ApplyStatus(library.StatusFinished, time.Now())

	assert.Equal(t, firstFinish, *entry.FinishedAt)
	assert.Nil(t, change.FinishedAt)
	assert.Nil(t, change.Progress)
}

/*
TestApplyStatus_BackToWantToRead verifies that moving back to want-to-read
keeps dates and progress untouched. Stale progress is retained, not cleared.
*/
func TestApplyStatus_BackToWantToRead(t *testing.T) {
	started := time.Now().Add(-time.Hour)
	entry := &library.Entry{
		Status:    library.StatusCurrentlyReading,
		StartedAt: pointer.To(started),
		Progress:  pointer.To(55),
	}

	_, startedNow := entry.ApplyStatus(library.StatusWantToRead, time.Now())

	assert.False(t, startedNow)
	assert.Equal(t, library.StatusWantToRead, entry.Status)
	assert.Equal(t, started, *entry.StartedAt)
	assert.Equal(t, 55, *entry.Progress)
}

/*
TestApplyProgress_StampsStartDate verifies that nonzero progress on a never-
started entry stamps the start date.
*/
func TestApplyProgress_StampsStartDate(t *testing.T) {
	now := time.Now()
	entry := &library.Entry{Status: library.StatusCurrentlyReading}

	change, promoted := entry.ApplyProgress(10, now)

	assert.False(t, promoted)
	require.NotNil(t, entry.StartedAt)
	assert.Equal(t, now, *entry.StartedAt)
	require.NotNil(t, change.Progress)
	assert.Equal(t, 10, *change.Progress)
}

/*
TestApplyProgress_ZeroDoesNotStampStartDate verifies that setting progress to
zero leaves the start date unset.
*/
func TestApplyProgress_ZeroDoesNotStampStartDate(t *testing.T) {
	entry := &library.Entry{Status: library.StatusCurrentlyReading}

	entry.ApplyProgress(0, time.Now())

	assert.Nil(t, entry.StartedAt)
}

/*
TestApplyProgress_FullPromotesToFinished verifies the 100-percent promotion:
a currently-reading entry at 100 becomes finished with a finish date.
*/
func TestApplyProgress_FullPromotesToFinished(t *testing.T) {
	now := time.Now()
	entry := &library.Entry{
		Status:    library.StatusCurrentlyReading,
		StartedAt: pointer.To(now.Add(-time.Hour)),
	}

	change, promoted := entry.ApplyProgress(100, now)

	assert.True(t, promoted)
	assert.Equal(t, library.StatusFinished, entry.Status)
	require.NotNil(t, entry.FinishedAt)
	assert.Equal(t, now, *entry.FinishedAt)
	require.NotNil(t, change.Status)
	assert.Equal(t, library.StatusFinished, *change.Status)
}

/*
TestApplyProgress_FullOnWantToReadDoesNotPromote verifies that the promotion
rule only fires from currently-reading.
*/
func TestApplyProgress_FullOnWantToReadDoesNotPromote(t *testing.T) {
	entry := &library.Entry{Status: library.StatusWantToRead}

	_, promoted := entry.ApplyProgress(100, time.Now())

	assert.False(t, promoted)
	assert.Equal(t, library.StatusWantToRead, entry.Status)
	assert.Nil(t, entry.FinishedAt)
}
