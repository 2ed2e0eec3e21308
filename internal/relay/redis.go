package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"carcassonne/internal/errors"
	"carcassonne/internal/redis"
	"carcassonne/internal/shared"
)

// RedisPublisher publishes broadcasts on a redis channel per room so that
// several server instances can share rooms.
type RedisPublisher struct {
	client redis.Client
	prefix string
}

type RedisConfig struct {
	Client redis.Client
	Prefix string
}

func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Prefix == "" {
		return errors.InvalidArgument("channel prefix is required")
	}
	return nil
}

func NewRedisPublisher(cfg *RedisConfig) (*RedisPublisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid redis publisher config")
	}
	return &RedisPublisher{client: cfg.Client, prefix: cfg.Prefix}, nil
}

func channel(prefix, room string) string {
	return fmt.Sprintf("%s:room:%s", prefix, room)
}

func (p *RedisPublisher) Publish(ctx context.Context, room string, msg shared.Broadcast) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode broadcast")
	}
	if err := p.client.Publish(ctx, channel(p.prefix, room), payload).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to publish broadcast")
	}
	return nil
}

// RedisFanout receives the broadcasts of all rooms from redis and hands them
// to a local publisher, usually the websocket hub.
type RedisFanout struct {
	client redis.Client
	prefix string
	local  Publisher
}

func NewRedisFanout(cfg *RedisConfig, local Publisher) (*RedisFanout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid redis fanout config")
	}
	if local == nil {
		return nil, errors.InvalidArgument("local publisher is required")
	}
	return &RedisFanout{client: cfg.Client, prefix: cfg.Prefix, local: local}, nil
}

// Run delivers messages until ctx is done. The returned channel is closed
// once the subscription is confirmed.
func (f *RedisFanout) Run(ctx context.Context) (<-chan struct{}, error) {
	sub := f.client.PSubscribe(ctx, channel(f.prefix, "*"))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to subscribe to room channels")
	}
	ready := make(chan struct{})
	close(ready)

	go func() {
		defer sub.Close()
		messages := sub.Channel()
		roomPrefix := channel(f.prefix, "")
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-messages:
				if !ok {
					return
				}
				var b shared.Broadcast
				if err := json.Unmarshal([]byte(m.Payload), &b); err != nil {
					slog.Error("Dropping undecodable broadcast", "channel", m.Channel, "error", err)
					continue
				}
				room := strings.TrimPrefix(m.Channel, roomPrefix)
				if err := f.local.Publish(ctx, room, b); err != nil {
					slog.Error("Failed to deliver broadcast", "room", room, "action", b.Action, "error", err)
				}
			}
		}
	}()
	return ready, nil
}
