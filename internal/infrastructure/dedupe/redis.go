package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "siso:upload-request:"

// RedisDeduper shares claimed ids across API instances using SET NX with a TTL.
type RedisDeduper struct {
	client *redis.Client
	window time.Duration
}

func NewRedisDeduper(ctx context.Context, redisURL string, window time.Duration) (*RedisDeduper, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisDeduper{client: client, window: window}, nil
}

func (d *RedisDeduper) Claim(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.SetNX(ctx, redisKey(id), time.Now().Unix(), d.window).Result()
	if err != nil {
		return false, fmt.Errorf("claim request id: %w", err)
	}
	return ok, nil
}

func (d *RedisDeduper) Release(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("release request id: %w", err)
	}
	return nil
}

func (d *RedisDeduper) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *RedisDeduper) Close() error {
	return d.client.Close()
}

func redisKey(id string) string {
	return keyPrefix + id
}
