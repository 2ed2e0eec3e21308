package ws

import (
	"context"

	"carcassonne/internal/relay"
	"carcassonne/internal/shared"
)

// Submitter accepts requests for ordered processing, see relay.Relay.
type Submitter interface {
	Submit(ctx context.Context, req relay.Request) (shared.Response, error)
}

// Lobby forgets subscribers whose connection went away.
type Lobby interface {
	RemoveSubscriber(ctx context.Context, room, id string) error
}
