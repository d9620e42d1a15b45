// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package metadata is a thin client for the external book-metadata provider.

It translates free-text searches and volume lookups into book descriptors
ready for the catalog resolver, and shields the rest of the application from
the provider's response shape. Results are cached in Redis because the
provider is both slow and rate limited.
*/
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// Client calls the provider's volumes API.
//
// The zero value is not usable; construct with [NewClient].
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a metadata [Client].
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: constants.MetadataRequestTimeout},
	}
}

// # Provider Wire Types

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Publisher     string      `json:"publisher"`
	PublishedDate string      `json:"publishedDate"`
	Description   string      `json:"description"`
	PageCount     int         `json:"pageCount"`
	Categories    []string    `json:"categories"`
	Language      string      `json:"language"`
	ImageLinks    *imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// # Operations

// Search runs a free-text query against the provider and returns descriptors.
func (client *Client) Search(context context.Context, query string, limit int) ([]catalog.BookDescriptor, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	if client.apiKey != "" {
		params.Set("key", client.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", client.baseURL, params.Encode())

	var payload volumesResponse
	if err := client.getJSON(context, endpoint, &payload); err != nil {
		return nil, err
	}

	descriptors := make([]catalog.BookDescriptor, 0, len(payload.Items))
	for _, item := range payload.Items {
		descriptor := item.descriptor()
		// Descriptors without both title and author cannot pass the
		// resolver's validation; drop them here.
		if descriptor.Title == "" || descriptor.Author == "" {
			continue
		}
		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}

// Volume looks up a single volume by provider ID.
func (client *Client) Volume(context context.Context, volumeID string) (*catalog.BookDescriptor, error) {
	params := url.Values{}
	if client.apiKey != "" {
		params.Set("key", client.apiKey)
	}

	endpoint := fmt.Sprintf("%s/volumes/%s", client.baseURL, url.PathEscape(volumeID))
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var payload volume
	if err := client.getJSON(context, endpoint, &payload); err != nil {
		return nil, err
	}

	descriptor := payload.descriptor()
	if descriptor.Title == "" {
		return nil, apperr.NotFound("Volume")
	}

	return &descriptor, nil
}

// getJSON performs a GET round trip and decodes the body.
func (client *Client) getJSON(context context.Context, endpoint string, target any) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperr.Internal(err)
	}

	response, err := client.http.Do(request)
	if err != nil {
		return apperr.Internal(fmt.Errorf("metadata provider unreachable: %w", err))
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return apperr.NotFound("Volume")
	case response.StatusCode == http.StatusTooManyRequests:
		return apperr.Internal(fmt.Errorf("metadata provider rate limited"))
	case response.StatusCode != http.StatusOK:
		return apperr.Internal(fmt.Errorf("metadata provider returned %d", response.StatusCode))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return apperr.Internal(fmt.Errorf("metadata provider response malformed: %w", err))
	}

	return nil
}

// descriptor maps a provider volume onto the resolver's input shape.
func (item volume) descriptor() catalog.BookDescriptor {
	info := item.VolumeInfo

	coverURL := ""
	if info.ImageLinks != nil {
		coverURL = info.ImageLinks.Thumbnail
		if coverURL == "" {
			coverURL = info.ImageLinks.SmallThumbnail
		}
		// The provider serves http URLs; upgrade for mixed-content safety.
		coverURL = strings.Replace(coverURL, "http://", "https://", 1)
	}

	return catalog.BookDescriptor{
		Title:         info.Title,
		Author:        strings.Join(info.Authors, ", "),
		CoverURL:      coverURL,
		Description:   info.Description,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		ExternalID:    item.ID,
		Language:      info.Language,
		Genres:        info.Categories,
	}
}
