package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"milk-collection-service/internal/platform/obs"
	"milk-collection-service/internal/ports"
)

const scheduleKey = "milkops:schedule:latest"

// RedisScheduleCache keeps the latest raw optimizer document in Redis so
// schedule reads do not hit the optimizer service on every request.
type RedisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScheduleCache(addr string, db int, ttl time.Duration) (*RedisScheduleCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("schedule cache: connect redis at %q: %w", addr, err)
	}

	return &RedisScheduleCache{client: client, ttl: ttl}, nil
}

func (c *RedisScheduleCache) Close() error { return c.client.Close() }

func (c *RedisScheduleCache) Get(ctx context.Context) (_ ports.RawScheduleDocument, _ bool, err error) {
	defer obs.Time(ctx, "schedule.cache.Get")(&err)

	payload, err := c.client.Get(ctx, scheduleKey).Bytes()
	if err == redis.Nil {
		err = nil
		return ports.RawScheduleDocument{}, false, nil
	}
	if err != nil {
		return ports.RawScheduleDocument{}, false, fmt.Errorf("schedule cache: get: %w", err)
	}

	var doc ports.RawScheduleDocument
	if err = json.Unmarshal(payload, &doc); err != nil {
		return ports.RawScheduleDocument{}, false, fmt.Errorf("schedule cache: decode: %w", err)
	}
	return doc, true, nil
}

func (c *RedisScheduleCache) Set(ctx context.Context, doc ports.RawScheduleDocument) (err error) {
	defer obs.Time(ctx, "schedule.cache.Set")(&err)

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("schedule cache: encode: %w", err)
	}
	if err = c.client.Set(ctx, scheduleKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("schedule cache: set: %w", err)
	}
	return nil
}

func (c *RedisScheduleCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, scheduleKey).Err(); err != nil {
		return fmt.Errorf("schedule cache: invalidate: %w", err)
	}
	return nil
}
