// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfmark/shelfmark/internal/library"
)

/*
TestFilterForViewer verifies the read-time visibility rules: owners see
everything, everyone else (including anonymous) only public entries.
*/
func TestFilterForViewer(t *testing.T) {
	owner := "user-1"
	entries := []*library.Entry{
		{ID: "a", UserID: owner, IsPublic: true},
		{ID: "b", UserID: owner, IsPublic: false},
		{ID: "c", UserID: owner, IsPublic: true},
	}

	t.Run("owner_sees_all", func(t *testing.T) {
		visible := library.FilterForViewer(entries, owner, owner)
		assert.Len(t, visible, 3)
	})

	t.Run("other_viewer_sees_public_only", func(t *testing.T) {
		visible := library.FilterForViewer(entries, "user-2", owner)
		assert.Len(t, visible, 2)
		for _, entry := range visible {
			assert.True(t, entry.IsPublic)
		}
	})

	t.Run("anonymous_sees_public_only", func(t *testing.T) {
		visible := library.FilterForViewer(entries, "", owner)
		assert.Len(t, visible, 2)
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		library.FilterForViewer(entries, "user-2", owner)
		assert.Len(t, entries, 3)
		assert.False(t, entries[1].IsPublic)
	})
}
