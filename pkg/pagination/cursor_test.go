// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelfmark/shelfmark/pkg/pagination"
	"github.com/shelfmark/shelfmark/pkg/uuid"
)

/*
TestCursorRoundtrip verifies that an encoded row ID decodes back to itself.
*/
func TestCursorRoundtrip(t *testing.T) {
	id := uuid.New()

	token := pagination.EncodeCursor(id)
	assert.NotEqual(t, id, token)
	assert.Equal(t, id, pagination.DecodeCursor(token))
}

/*
TestDecodeCursor_RejectsMalformedTokens verifies that forged or corrupted
cursors decode to the empty string rather than an error.
*/
func TestDecodeCursor_RejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_base64", "%%%%"},
		{"decodes_to_non_uuid", pagination.EncodeCursor("not-a-uuid")},
		{"raw_uuid_not_encoded", uuid.New()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, pagination.DecodeCursor(tt.token))
		})
	}
}

/*
TestCursorFromRequest verifies query parsing and limit clamping.
*/
func TestCursorFromRequest(t *testing.T) {
	id := uuid.New()

	t.Run("valid_cursor_and_limit", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/activity?cursor="+pagination.EncodeCursor(id)+"&limit=50", nil)

		params := pagination.CursorFromRequest(request)
		assert.Equal(t, id, params.After)
		assert.Equal(t, 50, params.Limit)
	})

	t.Run("defaults", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/activity", nil)

		params := pagination.CursorFromRequest(request)
		assert.Empty(t, params.After)
		assert.Equal(t, pagination.DefaultLimit, params.Limit)
	})

	t.Run("excessive_limit_clamped", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/activity?limit=5000", nil)

		params := pagination.CursorFromRequest(request)
		assert.Equal(t, pagination.DefaultLimit, params.Limit)
	})

	t.Run("malformed_cursor_ignored", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/activity?cursor=garbage", nil)

		params := pagination.CursorFromRequest(request)
		assert.Empty(t, params.After)
	})
}

/*
TestNewCursorMeta verifies next-cursor emission on full and final pages.
*/
func TestNewCursorMeta(t *testing.T) {
	id := uuid.New()

	t.Run("more_pages", func(t *testing.T) {
		meta := pagination.NewCursorMeta(id, 20, true)
		assert.True(t, meta.HasMore)
		assert.Equal(t, pagination.EncodeCursor(id), meta.NextCursor)
	})

	t.Run("final_page", func(t *testing.T) {
		meta := pagination.NewCursorMeta(id, 20, false)
		assert.False(t, meta.HasMore)
		assert.Empty(t, meta.NextCursor)
	})
}
