// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package metadata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// CachedClient wraps [Client] with a Redis read-through cache.
//
// Cache failures degrade to a provider round trip; they are logged but never
// surfaced to callers.
type CachedClient struct {
	client *Client
	cache  *redis.Client
	logger *slog.Logger
}

// NewCachedClient constructs a [CachedClient].
func NewCachedClient(client *Client, cache *redis.Client, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Search runs a free-text query, serving repeated queries from Redis.
func (cached *CachedClient) Search(context context.Context, query string, limit int) ([]catalog.BookDescriptor, error) {
	key := searchKey(query, limit)

	var descriptors []catalog.BookDescriptor
	if cached.get(context, key, &descriptors) {
		return descriptors, nil
	}

	descriptors, err := cached.client.Search(context, query, limit)
	if err != nil {
		return nil, err
	}

	cached.set(context, key, descriptors, constants.MetadataSearchCacheTTL)

	return descriptors, nil
}

// Volume looks up a single volume by provider ID, cached for longer than
// searches because volume records rarely change.
func (cached *CachedClient) Volume(context context.Context, volumeID string) (*catalog.BookDescriptor, error) {
	key := constants.RedisPrefixMetadataVolume + volumeID

	var descriptor catalog.BookDescriptor
	if cached.get(context, key, &descriptor) {
		return &descriptor, nil
	}

	result, err := cached.client.Volume(context, volumeID)
	if err != nil {
		return nil, err
	}

	cached.set(context, key, result, constants.MetadataVolumeCacheTTL)

	return result, nil
}

// get loads and decodes a cache entry, reporting whether it was a hit.
func (cached *CachedClient) get(context context.Context, key string, target any) bool {
	raw, err := cached.cache.Get(context, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			cached.logger.WarnContext(context, "metadata_cache_read_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		cached.logger.WarnContext(context, "metadata_cache_entry_malformed",
			slog.String("key", key),
		)
		return false
	}

	return true
}

// set encodes and stores a cache entry, best-effort.
func (cached *CachedClient) set(context context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := cached.cache.Set(context, key, raw, ttl).Err(); err != nil {
		cached.logger.WarnContext(context, "metadata_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// searchKey derives a bounded cache key from the query text.
//
// Queries are user input of unbounded length; hashing keeps keys short and
// avoids Redis key-space pollution from exotic characters.
func searchKey(query string, limit int) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	digest := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%s%s:%d", constants.RedisPrefixMetadataSearch, hex.EncodeToString(digest[:8]), limit)
}
