// Package redis wraps the go-redis client so the lobby registry and the
// broadcast fan-out can share one connection and tests can swap in miniredis.
package redis

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis every component here depends on.
type Client interface {
	redis.UniversalClient
}

// Options tunes the connection pool.
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
}

// NewClient creates a client for a single Redis instance. Redis connects
// lazily, so an unreachable endpoint only shows up on first use.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	return redis.NewClient(&redis.Options{
		Addr:            endpoint,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdleConns,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}), nil
}
