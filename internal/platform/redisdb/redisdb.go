package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
)

const directoryKey = "profiles:directory"

// NewClient builds a client and verifies the connection with a ping.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ProfileDirectoryCache is a read-through cache for the public profile
// directory. Cache failures degrade to store reads and are never surfaced to
// callers.
type ProfileDirectoryCache struct {
	rdb *redis.Client
	log *logger.Logger
	ttl time.Duration
}

func NewProfileDirectoryCache(rdb *redis.Client, baseLog *logger.Logger, ttl time.Duration) *ProfileDirectoryCache {
	cacheLog := baseLog.With("cache", "ProfileDirectoryCache")
	return &ProfileDirectoryCache{rdb: rdb, log: cacheLog, ttl: ttl}
}

func (c *ProfileDirectoryCache) GetDirectory(ctx context.Context) ([]domain.ProfileView, bool) {
	raw, err := c.rdb.Get(ctx, directoryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("directory read failed", "error", err)
		return nil, false
	}
	var views []domain.ProfileView
	if err := json.Unmarshal(raw, &views); err != nil {
		c.log.Warn("directory decode failed", "error", err)
		return nil, false
	}
	return views, true
}

func (c *ProfileDirectoryCache) SetDirectory(ctx context.Context, views []domain.ProfileView) {
	raw, err := json.Marshal(views)
	if err != nil {
		c.log.Warn("directory encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, directoryKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("directory write failed", "error", err)
	}
}

func (c *ProfileDirectoryCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, directoryKey).Err(); err != nil {
		c.log.Warn("directory invalidate failed", "error", err)
	}
}
