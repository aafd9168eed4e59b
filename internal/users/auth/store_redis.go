// Copyright (c) 2026 Patriarchia. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/platform/constants"
)

// RedisSessionStore implements [SessionStore] on Redis.
//
// Each session is a single key holding the admin ID; expiry rides on the
// Redis TTL so there is no sweeper to run.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore constructs a Redis backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

// Create records a refresh session under the token digest.
func (repository *RedisSessionStore) Create(ctx context.Context, tokenHash string, adminID int, ttl time.Duration) error {
	if err := repository.client.Set(ctx, sessionKey(tokenHash), adminID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}
	return nil
}

// Find resolves a token digest to its admin ID.
func (repository *RedisSessionStore) Find(ctx context.Context, tokenHash string) (int, error) {
	value, err := repository.client.Get(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return 0, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	adminID, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("redis_session_corrupt_value: %w", err)
	}
	return adminID, nil
}

// Delete removes a session; absent sessions are ignored.
func (repository *RedisSessionStore) Delete(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
