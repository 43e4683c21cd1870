package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the client backing the job queues and the rate limiter.
// BRPOP consumers hold a connection for the length of their poll, so a couple
// of idle connections stay warm beyond the default pool.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.MinIdleConns = 2
	opts.MaxRetries = 3

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
