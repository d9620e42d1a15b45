// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

/*
TestParseStatus_Synonyms verifies that every legacy synonym normalizes to its
canonical value.
*/
func TestParseStatus_Synonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want library.Status
	}{
		{"want-to-read", library.StatusWantToRead},
		{"to-read", library.StatusWantToRead},
		{"to_read", library.StatusWantToRead},
		{"currently-reading", library.StatusCurrentlyReading},
		{"reading", library.StatusCurrentlyReading},
		{"finished", library.StatusFinished},
		{"completed", library.StatusFinished},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, err := library.ParseStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.True(t, status.IsValid())
		})
	}
}

/*
TestParseStatus_Unknown verifies that unrecognized values are a validation
error, never passed through.
*/
func TestParseStatus_Unknown(t *testing.T) {
	for _, raw := range []string{"", "abandoned", "WANT-TO-READ", "done"} {
		t.Run(raw, func(t *testing.T) {
			_, err := library.ParseStatus(raw)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}
