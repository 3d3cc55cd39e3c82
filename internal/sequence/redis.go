package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "evspare:orders:seq:"

	// Keys outlive their day by enough to survive clock skew between
	// instances, then expire on their own.
	redisKeyTTL = 48 * time.Hour
)

// Redis backs the day counter with INCR, which is atomic across all
// storefront instances sharing the same Redis.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Next(ctx context.Context, day string) (int64, error) {
	key := redisKeyPrefix + day

	seq, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment day counter %s: %w", day, err)
	}

	// First increment of the day creates the key; give it an expiry so
	// stale day counters do not accumulate.
	if seq == 1 {
		if err := r.client.Expire(ctx, key, redisKeyTTL).Err(); err != nil {
			return 0, fmt.Errorf("failed to set ttl on day counter %s: %w", day, err)
		}
	}

	return seq, nil
}
