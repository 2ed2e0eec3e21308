package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"carcassonne/internal/config"
	"carcassonne/internal/errors"
	"carcassonne/internal/room"
	"carcassonne/internal/shared"
)

type SessionConfig struct {
	Client   config.Client
	Game     config.Game
	Room     string
	Settings *config.Settings
	Listener room.Listener

	HTTPClient *http.Client
	Dialer     *websocket.Dialer
}

// Session plays one seat of a networked round. It is the controller's
// Sender and feeds the controller whatever the server broadcasts.
type Session struct {
	requester  *Requester
	subscriber *Subscriber
	controller *room.Controller
	mirror     *Mirror
	settings   *config.Settings

	mu  sync.Mutex
	sub *Subscription
}

func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	requester, err := NewRequester(&RequesterConfig{
		ServerURL:   cfg.Client.ServerURL,
		Room:        cfg.Room,
		RetryDelay:  cfg.Client.RetryDelay,
		MaxAttempts: cfg.Client.MaxAttempts,
		HTTPClient:  cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	subscriber, err := NewSubscriber(&SubscriberConfig{
		ServerURL:   cfg.Client.ServerURL,
		Room:        cfg.Room,
		RetryDelay:  cfg.Client.RetryDelay,
		MaxAttempts: cfg.Client.MaxAttempts,
		Dialer:      cfg.Dialer,
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		requester:  requester,
		subscriber: subscriber,
		settings:   cfg.Settings,
	}
	s.controller, err = room.NewController(&room.Config{
		Settings: cfg.Settings,
		Game:     cfg.Game,
		Listener: cfg.Listener,
		Sender:   s,
	})
	if err != nil {
		return nil, err
	}
	s.mirror = NewMirror(s.controller, cfg.Listener)
	return s, nil
}

func (s *Session) Controller() *room.Controller { return s.controller }

// Connect opens both channels. The subscription must exist before any
// request, since requests are sent in its name.
func (s *Session) Connect(ctx context.Context) (string, error) {
	sub, err := s.subscriber.Subscribe(ctx)
	if err != nil {
		return "", err
	}
	s.requester.SetSubscriberID(sub.ID)
	s.mirror.SetSelf(sub.ID)
	if _, err := s.requester.Connect(ctx); err != nil {
		_ = sub.Close()
		return "", err
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()
	return sub.ID, nil
}

// Run follows the room until ctx is done or the local state diverges.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	if sub == nil {
		return errors.New(errors.CodeFailedPrecondition, "session is not connected")
	}
	return sub.Run(ctx, s.mirror.Handle)
}

func (s *Session) SendGameStart(ctx context.Context) error {
	shuffle := s.settings.Shuffle()
	_, err := s.requester.Post(ctx, "game-start", shared.GameStart{Shuffle: &shuffle})
	return err
}

func (s *Session) SendTilePlaced(ctx context.Context, msg shared.TilePlaced) error {
	_, err := s.requester.Post(ctx, "tile-placed", msg)
	return err
}

func (s *Session) SendMeeplePlaced(ctx context.Context, msg shared.MeeplePlaced) error {
	_, err := s.requester.Post(ctx, "meeple-placed", msg)
	return err
}

func (s *Session) SendPlacingSkipped(ctx context.Context, msg shared.PlacingSkipped) error {
	_, err := s.requester.Post(ctx, "placing-skipped", msg)
	return err
}
