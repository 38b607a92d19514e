package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per cached entity.
const (
	TweetTTL    = 5 * time.Minute
	ProfileTTL  = 5 * time.Minute
	TimelineTTL = 30 * time.Second
)

// TweetKey returns the cache key for a tweet detail.
func TweetKey(id uint) string {
	return fmt.Sprintf("tweet:%d", id)
}

// ProfileKey returns the cache key for a user's public profile.
func ProfileKey(userID uint) string {
	return fmt.Sprintf("profile:user:%d", userID)
}

// TimelineKey is the cache key for the anonymous public timeline. Only the
// first page at TimelinePageLimit is cached; other page sizes would collide
// under the shared key and serve truncated pages.
const (
	TimelineKey       = "timeline:public"
	TimelinePageLimit = 20
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Invalidate removes the given keys. Best-effort; errors are ignored
// because a stale entry expires on its own TTL.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_ = client.Del(ctx, keys...).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate dest),
// then stores the result in Redis with ttl. fetch must write into dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Fetch from source (DB)
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
