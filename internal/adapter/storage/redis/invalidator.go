package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces every cache entry owned by the read-side cache
// collaborator.
const keyPrefix = "cache:"

// Invalidator implements ports.CacheInvalidator by deleting keys matching
// resource-scoped patterns. SCAN is used instead of KEYS to avoid blocking
// the Redis server on large keyspaces.
type Invalidator struct {
	client *goredis.Client
	log    zerolog.Logger
}

// NewInvalidator creates a cache invalidator.
func NewInvalidator(client *goredis.Client, log zerolog.Logger) *Invalidator {
	return &Invalidator{client: client, log: log}
}

// Invalidate deletes all cache keys matching the given patterns. Patterns
// are relative to the cache namespace, e.g. "account:<id>:*".
func (i *Invalidator) Invalidate(ctx context.Context, patterns ...string) error {
	for _, pattern := range patterns {
		if err := i.deleteMatching(ctx, keyPrefix+pattern); err != nil {
			return fmt.Errorf("invalidate %q: %w", pattern, err)
		}
	}
	return nil
}

func (i *Invalidator) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := i.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := i.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		i.log.Debug().Str("pattern", pattern).Int("keys", deleted).Msg("cache invalidated")
	}
	return nil
}
