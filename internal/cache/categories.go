// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// categories.go caches each user's category list in Valkey. Lists are
// read on almost every page of the client, while writes are rare, so a
// short-lived read-through entry dropped on every mutation is enough.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"devlink/internal/models"
)

const (
	// categoryKeyPrefix is the Valkey key prefix for cached category lists.
	categoryKeyPrefix = "categories:"

	// DefaultCategoryTTL is how long a category list stays cached.
	DefaultCategoryTTL = 5 * time.Minute
)

// CategoryCache stores category lists keyed by owner. A nil *CategoryCache
// is valid and caches nothing. Errors are logged and otherwise ignored so
// a Valkey outage only costs a database round trip.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// CategoryKey returns the cache key for an owner's category list.
func CategoryKey(ownerID int64) string {
	return categoryKeyPrefix + strconv.FormatInt(ownerID, 10)
}

// Get returns the cached list for ownerID, or false on a miss.
func (cc *CategoryCache) Get(ctx context.Context, ownerID int64) ([]models.Category, bool) {
	if cc == nil {
		return nil, false
	}
	key := CategoryKey(ownerID)
	val, err := cc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "key", key, "error", err)
		return nil, false
	}

	var items []models.Category
	if err := json.Unmarshal(val, &items); err != nil {
		slog.Warn("category cache decode error", "key", key, "error", err)
		cc.Invalidate(ctx, ownerID)
		return nil, false
	}
	if items == nil {
		items = []models.Category{}
	}
	slog.Debug("category cache hit", "key", key)
	return items, true
}

// Set stores the list for ownerID with the configured TTL.
func (cc *CategoryCache) Set(ctx context.Context, ownerID int64, items []models.Category) {
	if cc == nil {
		return
	}
	key := CategoryKey(ownerID)
	b, err := json.Marshal(items)
	if err != nil {
		slog.Warn("category cache encode error", "key", key, "error", err)
		return
	}
	if err := cc.client.Set(ctx, key, b, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "key", key, "error", err)
	}
}

// Invalidate drops the cached list for ownerID.
func (cc *CategoryCache) Invalidate(ctx context.Context, ownerID int64) {
	if cc == nil {
		return
	}
	key := CategoryKey(ownerID)
	if err := cc.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("category cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("category cache invalidated", "key", key)
}
