// Package redis holds the Redis connection used by the token blacklist.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options are the connection settings, wired from config at startup. Zero
// values fall back to defaults suitable for a local instance.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	PoolSize    int
}

type Client struct {
	*redis.Client
}

// NewClient connects and pings; the blacklist is load-bearing for token
// revocation, so the server refuses to start without a reachable Redis.
func NewClient(opts Options) (*Client, error) {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = 10
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.DialTimeout,
		WriteTimeout: opts.DialTimeout,
		PoolSize:     opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{Client: rdb}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}
