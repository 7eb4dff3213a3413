package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/festive-table/internal/model"
)

const listCacheKey = "posts:all"

// ListCache keeps the rendered post list in Redis for a short TTL so burst
// reads of the table skip the database. A nil *ListCache disables caching.
type ListCache struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewListCache(cache *redis.Client, ttl time.Duration) *ListCache {
	if cache == nil || ttl <= 0 {
		return nil
	}
	return &ListCache{cache: cache, ttl: ttl}
}

// Get returns the cached list and whether it was present.
func (lc *ListCache) Get(ctx context.Context) ([]*model.Post, bool) {
	if lc == nil {
		return nil, false
	}
	data, err := lc.cache.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []*model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// Set stores the list; cache write failures are ignored, the DB remains the
// source of truth.
func (lc *ListCache) Set(ctx context.Context, posts []*model.Post) {
	if lc == nil {
		return
	}
	if payload, err := json.Marshal(posts); err == nil {
		_ = lc.cache.Set(ctx, listCacheKey, payload, lc.ttl).Err()
	}
}

// Invalidate drops the cached list after a create or delete.
func (lc *ListCache) Invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	_ = lc.cache.Del(ctx, listCacheKey).Err()
}
