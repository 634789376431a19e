package service

import (
	"context"                     // Context for Redis operations
	"encoding/json"               // Cache entry decoding
	"errors"                      // Error inspection
	"fmt"                         // Message formatting
	"leave_system/internal/utils" // Redis cache helpers
	"time"                        // Time durations

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	allGenerationKey   = "leaves:gen:all"
	ownerGenerationFmt = "leaves:gen:owner:%d"
)

// listCache keeps list pages in redis. Keys embed generation counters that
// writes bump, so a write makes every older page unreachable at once.
// All methods are no-ops on a nil receiver.
type listCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

func (c *listCache) ownerKey(ctx context.Context, ownerID uint, page, limit int) string {
	if c == nil {
		return ""
	}
	gen, err := utils.Generation(ctx, c.rdb, fmt.Sprintf(ownerGenerationFmt, ownerID))
	if err != nil {
		c.log.WithError(err).Warn("Cache generation lookup failed")
		return ""
	}
	return fmt.Sprintf("leaves:owner:%d:g%d:page:%d:limit:%d", ownerID, gen, page, limit)
}

func (c *listCache) allKey(ctx context.Context, page, limit int) string {
	if c == nil {
		return ""
	}
	gen, err := utils.Generation(ctx, c.rdb, allGenerationKey)
	if err != nil {
		c.log.WithError(err).Warn("Cache generation lookup failed")
		return ""
	}
	return fmt.Sprintf("leaves:all:g%d:page:%d:limit:%d", gen, page, limit)
}

func (c *listCache) get(ctx context.Context, key string, dest any) bool {
	if c == nil || key == "" {
		return false
	}
	found, err := utils.GetCache(ctx, c.rdb, key, dest)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache read failed")
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			// Unreadable entry, drop it so the next read repopulates
			if err := utils.DeleteCache(ctx, c.rdb, key); err != nil {
				c.log.WithError(err).WithField("key", key).Warn("Cache delete failed")
			}
		}
		return false
	}
	return found
}

func (c *listCache) set(ctx context.Context, key string, value any) {
	if c == nil || key == "" {
		return
	}
	if err := utils.SetCache(ctx, c.rdb, key, value, c.ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *listCache) invalidate(ctx context.Context, ownerID uint) {
	if c == nil {
		return
	}
	for _, key := range []string{fmt.Sprintf(ownerGenerationFmt, ownerID), allGenerationKey} {
		if err := utils.BumpGeneration(ctx, c.rdb, key); err != nil {
			c.log.WithError(err).WithField("key", key).Error("Cache invalidation failed")
		}
	}
}
