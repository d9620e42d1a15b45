// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// RedisRevocationCache implements RevocationCache using Redis tombstones.
//
// Entries carry a TTL equal to the access token lifetime: once the access
// token would have expired anyway, the tombstone is useless and drops out.
type RedisRevocationCache struct {
	client *redis.Client
}

// NewRevocationCache creates a new Redis-backed RevocationCache.
func NewRevocationCache(client *redis.Client) *RedisRevocationCache {
	return &RedisRevocationCache{client: client}
}

// MarkRevoked writes a revocation tombstone for the given session.
func (cache *RedisRevocationCache) MarkRevoked(context context.Context, sessionID string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedSession + sessionID

	if err := cache.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_set_failed: %w", err)
	}

	return nil
}

// IsRevoked reports whether a tombstone exists for the given session.
func (cache *RedisRevocationCache) IsRevoked(context context.Context, sessionID string) (bool, error) {
	key := constants.RedisPrefixRevokedSession + sessionID

	_, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_get_failed: %w", err)
	}

	return true, nil
}
