package replay

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	lorawan "github.com/brocaar/lwdissect"
)

// RedisChecker is a Checker backed by a Redis key per DevAddr holding
// the highest FCnt observed so far.
type RedisChecker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisChecker constructs a RedisChecker. prefix defaults to
// "lwdissect:replay:" when empty; ttl defaults to 24h when zero, long
// enough to span a device's normal reporting interval without keys
// accumulating forever.
func NewRedisChecker(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisChecker {
	if prefix == "" {
		prefix = "lwdissect:replay:"
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisChecker{client: client, prefix: prefix, ttl: ttl}
}

// Seen implements Checker. It is not atomic across concurrent callers
// for the same DevAddr (read-then-write), which is acceptable for a
// best-effort diagnostics flag rather than a security boundary.
func (c *RedisChecker) Seen(ctx context.Context, devAddr lorawan.DevAddr, fcnt uint32) (bool, error) {
	key := c.key(devAddr)

	last, err := c.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("lwdissect/replay: get %s: %w", key, err)
	}

	if err == nil {
		lastFCnt, perr := strconv.ParseUint(last, 10, 32)
		if perr == nil && uint32(lastFCnt) >= fcnt {
			return true, nil
		}
	}

	if err := c.client.Set(ctx, key, fcnt, c.ttl).Err(); err != nil {
		return false, fmt.Errorf("lwdissect/replay: set %s: %w", key, err)
	}
	return false, nil
}

func (c *RedisChecker) key(devAddr lorawan.DevAddr) string {
	return fmt.Sprintf("%s%s", c.prefix, devAddr)
}
