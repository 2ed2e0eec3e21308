package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"carcassonne/internal/errors"
	"carcassonne/internal/shared"
)

// Handler consumes one broadcast. An error ends the subscription.
type Handler func(ctx context.Context, msg shared.Broadcast) error

type SubscriberConfig struct {
	ServerURL   string
	Room        string
	RetryDelay  time.Duration
	MaxAttempts int
	Dialer      *websocket.Dialer
}

func (c *SubscriberConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Room == "" {
		return errors.InvalidArgument("room is required")
	}
	if c.MaxAttempts < 1 {
		return errors.InvalidArgumentf("max attempts %d must be positive", c.MaxAttempts)
	}
	return nil
}

// Subscriber opens the pub/sub channel of a room.
type Subscriber struct {
	url         string
	retryDelay  time.Duration
	maxAttempts int
	dialer      *websocket.Dialer
}

func NewSubscriber(cfg *SubscriberConfig) (*Subscriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid subscriber config")
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, errors.InvalidArgumentf("server url %q: %v", cfg.ServerURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"room_code": {cfg.Room}}.Encode()

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Subscriber{
		url:         u.String(),
		retryDelay:  cfg.RetryDelay,
		maxAttempts: cfg.MaxAttempts,
		dialer:      dialer,
	}, nil
}

// Subscription is an established pub/sub connection.
type Subscription struct {
	ID   string
	conn *websocket.Conn
}

// Subscribe dials the server, retrying failed dials, and completes the
// pub-sub handshake.
func (s *Subscriber) Subscribe(ctx context.Context) (*Subscription, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		sub, err := s.subscribe(ctx)
		if err == nil {
			return sub, nil
		}
		lastErr = err
		if !errors.IsUnavailable(err) || attempt == s.maxAttempts {
			break
		}
		slog.Warn("Subscription failed, retrying", "url", s.url, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "subscription canceled")
		case <-time.After(s.retryDelay):
		}
	}
	return nil, lastErr
}

func (s *Subscriber) subscribe(ctx context.Context) (*Subscription, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to dial server")
	}
	if err := conn.WriteJSON(shared.NewConnection{Role: shared.RolePubSub}); err != nil {
		_ = conn.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to send handshake")
	}
	var ack shared.Response
	if err := conn.ReadJSON(&ack); err != nil {
		_ = conn.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read handshake")
	}
	if ack.Code != shared.CodeOK || ack.ConnectionID == "" {
		_ = conn.Close()
		return nil, errors.Newf(errors.CodeFailedPrecondition, "subscription refused: %s", ack.Message)
	}
	slog.Info("Subscribed", "url", s.url, "subscriber", ack.ConnectionID)
	return &Subscription{ID: ack.ConnectionID, conn: conn}, nil
}

// Run hands every broadcast to handle until ctx is done, the connection
// drops or handle fails. Cancellation is not an error.
func (s *Subscription) Run(ctx context.Context, handle Handler) error {
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()
	defer s.conn.Close()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.WrapWithCode(err, errors.CodeUnavailable, "connection lost")
		}
		var msg shared.Broadcast
		if err := json.Unmarshal(data, &msg); err != nil {
			return errors.WrapWithCode(err, errors.CodeDataLoss, "undecodable broadcast")
		}
		if err := handle(ctx, msg); err != nil {
			return err
		}
	}
}

// Close ends the subscription.
func (s *Subscription) Close() error {
	return s.conn.Close()
}
