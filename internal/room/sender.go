package room

import (
	"context"

	"carcassonne/internal/shared"
)

// Sender carries local actions to the server. Each call returns once the
// server acknowledged the request; the controller applies an action only
// after that.
type Sender interface {
	SendGameStart(ctx context.Context) error
	SendTilePlaced(ctx context.Context, msg shared.TilePlaced) error
	SendMeeplePlaced(ctx context.Context, msg shared.MeeplePlaced) error
	SendPlacingSkipped(ctx context.Context, msg shared.PlacingSkipped) error
}
