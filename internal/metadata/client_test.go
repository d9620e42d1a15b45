// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/metadata"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

const searchBody = `{
	"totalItems": 3,
	"items": [
		{
			"id": "vol-1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"publisher": "Chilton Books",
				"publishedDate": "1965",
				"pageCount": 412,
				"categories": ["Science Fiction"],
				"language": "en",
				"imageLinks": {"thumbnail": "http://books.example.com/dune.jpg"}
			}
		},
		{
			"id": "vol-2",
			"volumeInfo": {
				"title": "Good Omens",
				"authors": ["Terry Pratchett", "Neil Gaiman"]
			}
		},
		{
			"id": "vol-3",
			"volumeInfo": {
				"title": "Anonymous Pamphlet"
			}
		}
	]
}`

/*
TestSearch_MapsVolumes verifies the wire mapping: multi-author join, https
cover upgrade, and dropping items the resolver could never accept.
*/
func TestSearch_MapsVolumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/volumes", request.URL.Path)
		assert.Equal(t, "dune", request.URL.Query().Get("q"))
		assert.Equal(t, "10", request.URL.Query().Get("maxResults"))
		assert.Equal(t, "test-key", request.URL.Query().Get("key"))
		_, _ = writer.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, "test-key")
	descriptors, err := client.Search(context.Background(), "dune", 10)

	require.NoError(t, err)
	// vol-3 has no author and must be dropped.
	require.Len(t, descriptors, 2)

	dune := descriptors[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.Author)
	assert.Equal(t, "vol-1", dune.ExternalID)
	assert.Equal(t, "https://books.example.com/dune.jpg", dune.CoverURL)
	assert.Equal(t, 412, dune.PageCount)
	assert.Equal(t, []string{"Science Fiction"}, dune.Genres)

	assert.Equal(t, "Terry Pratchett, Neil Gaiman", descriptors[1].Author)
}

/*
TestSearch_EmptyResult verifies that a query with no matches returns an empty
slice, not an error.
*/
func TestSearch_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, "")
	descriptors, err := client.Search(context.Background(), "xyzzy", 10)

	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

/*
TestVolume_MapsSingleVolume verifies the by-ID lookup path.
*/
func TestVolume_MapsSingleVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/volumes/vol-1", request.URL.Path)
		_, _ = writer.Write([]byte(`{
			"id": "vol-1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"imageLinks": {"smallThumbnail": "http://books.example.com/dune-small.jpg"}
			}
		}`))
	}))
	defer server.Close()

	client := metadata.NewClient(server.URL, "")
	descriptor, err := client.Volume(context.Background(), "vol-1")

	require.NoError(t, err)
	assert.Equal(t, "Dune", descriptor.Title)
	// smallThumbnail is the fallback when thumbnail is absent.
	assert.Equal(t, "https://books.example.com/dune-small.jpg", descriptor.CoverURL)
}

/*
TestVolume_ProviderErrors verifies status-code classification.
*/
func TestVolume_ProviderErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedCode string
	}{
		{"not_found", http.StatusNotFound, `{}`, "NOT_FOUND"},
		{"rate_limited", http.StatusTooManyRequests, `{}`, "INTERNAL_ERROR"},
		{"server_error", http.StatusInternalServerError, `{}`, "INTERNAL_ERROR"},
		{"malformed_body", http.StatusOK, `{"id": `, "INTERNAL_ERROR"},
		{"missing_title", http.StatusOK, `{"id": "vol-1", "volumeInfo": {}}`, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := metadata.NewClient(server.URL, "")
			_, err := client.Volume(context.Background(), "vol-1")

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, apperr.As(err).Code)
		})
	}
}
