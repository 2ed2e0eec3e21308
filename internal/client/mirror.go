package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"carcassonne/internal/errors"
	"carcassonne/internal/room"
	"carcassonne/internal/shared"
)

// Mirror replays broadcasts into the local controller so that it follows
// the state of every peer.
type Mirror struct {
	controller *room.Controller
	listener   room.Listener

	mu   sync.RWMutex
	self string
}

func NewMirror(controller *room.Controller, listener room.Listener) *Mirror {
	if listener == nil {
		listener = room.NopListener{}
	}
	return &Mirror{controller: controller, listener: listener}
}

// SetSelf names the local subscriber. Its own turn actions were applied
// when they were sent, so their echo is dropped.
func (m *Mirror) SetSelf(id string) {
	m.mu.Lock()
	m.self = id
	m.mu.Unlock()
}

func (m *Mirror) isSelf(originator string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return originator != "" && originator == m.self
}

// Handle applies one broadcast. Errors mean the local state can no longer
// be trusted.
func (m *Mirror) Handle(_ context.Context, msg shared.Broadcast) error {
	switch msg.Action {
	case shared.ActionWelcome:
		var welcome shared.Welcome
		if err := decode(msg, &welcome); err != nil {
			return err
		}
		m.listener.OnWelcome(welcome.SubscriberID, welcome.Subscribers)
		return nil

	case shared.ActionGameStart:
		var started shared.GameStarted
		if err := decode(msg, &started); err != nil {
			return err
		}
		if started.PlayerIndex < 0 {
			slog.Warn("Round started without a seat for this subscriber")
			return nil
		}
		// Peers only ask for a round from Idle or GameOver, so a start that
		// lands in a running round means the room has diverged.
		if state := m.controller.State(); state != room.StateIdle && state != room.StateGameOver {
			slog.Error("Round started during a running round", "state", state.String(), "originator", msg.Originator)
			return errors.Desyncf("round started by %s while %s", msg.Originator, state)
		}
		return m.controller.StartRound(started.Seed, started.PlayerIndex)

	case shared.ActionTilePlaced, shared.ActionMeeplePlaced, shared.ActionPlacingSkipped:
		if m.isSelf(msg.Originator) {
			return nil
		}
		return m.replay(msg)
	}
	slog.Warn("Ignoring unknown broadcast", "action", msg.Action, "originator", msg.Originator)
	return nil
}

func (m *Mirror) replay(msg shared.Broadcast) error {
	var err error
	switch msg.Action {
	case shared.ActionTilePlaced:
		var placed shared.TilePlaced
		if err = decode(msg, &placed); err == nil {
			err = m.controller.ApplyTilePlaced(placed)
		}
	case shared.ActionMeeplePlaced:
		var placed shared.MeeplePlaced
		if err = decode(msg, &placed); err == nil {
			err = m.controller.ApplyMeeplePlaced(placed)
		}
	case shared.ActionPlacingSkipped:
		var skipped shared.PlacingSkipped
		if err = decode(msg, &skipped); err == nil {
			err = m.controller.ApplyPlacingSkipped(skipped)
		}
	}
	if err != nil {
		slog.Error("Failed to replay broadcast", "action", msg.Action, "originator", msg.Originator, "error", err)
		return errors.Wrapf(err, "failed to replay %s", msg.Action)
	}
	return nil
}

func decode(msg shared.Broadcast, v any) error {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "malformed "+msg.Action+" payload")
	}
	return nil
}
