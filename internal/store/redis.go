package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"carcassonne/internal/errors"
	"carcassonne/internal/redis"
)

// RedisStore keeps one list per room so several server instances share a lobby.
type RedisStore struct {
	client redis.Client
	prefix string
}

type RedisConfig struct {
	Client redis.Client
	Prefix string
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "carcassonne"
	}
	return &RedisStore{client: cfg.Client, prefix: prefix}, nil
}

func (s *RedisStore) key(room string) string {
	return fmt.Sprintf("%s:room:%s:subscribers", s.prefix, room)
}

func (s *RedisStore) AddSubscriber(ctx context.Context, room, id string) (int, error) {
	ids, err := s.Subscribers(ctx, room)
	if err != nil {
		return 0, err
	}
	if slices.Contains(ids, id) {
		return len(ids), nil
	}
	n, err := s.client.RPush(ctx, s.key(room), id).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to register subscriber", "room", room, "subscriber", id, "error", err)
		return 0, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to register subscriber")
	}
	return int(n), nil
}

func (s *RedisStore) Subscribers(ctx context.Context, room string) ([]string, error) {
	ids, err := s.client.LRange(ctx, s.key(room), 0, -1).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list subscribers")
	}
	return ids, nil
}

func (s *RedisStore) RemoveSubscriber(ctx context.Context, room, id string) error {
	if err := s.client.LRem(ctx, s.key(room), 0, id).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to remove subscriber")
	}
	return nil
}
