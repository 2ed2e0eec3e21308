package room

import "carcassonne/internal/game"

//go:generate mockgen -destination=mock/mock_listener.go -package=roommock carcassonne/internal/room Listener

// Listener is told about everything a user interface has to show. Calls are
// made while the controller holds its lock, so implementations must not call
// back into the controller synchronously.
type Listener interface {
	OnTilePlaced(tile *game.Tile)
	OnMeeplePlaced(meeple *game.Meeple)
	// OnMeepleRemoved reports a meeple that went back to its owner from pos on tile.
	OnMeepleRemoved(tile *game.Tile, pos game.Direction)
	OnScoreChanged(player *game.Player)
	OnStackSizeChanged(size int)
	OnHighlightPlaceable(spots []*game.Spot)
	OnStateChanged(state State)
	OnGameOver(winners []*game.Player)
	OnWelcome(subscriberID string, subscribers int)
}

// NopListener ignores every event. Embed it to implement only a few methods.
type NopListener struct{}

func (NopListener) OnTilePlaced(*game.Tile) {}
func (NopListener) OnMeeplePlaced(*game.Meeple) {}
func (NopListener) OnMeepleRemoved(*game.Tile, game.Direction) {}
func (NopListener) OnScoreChanged(*game.Player) {}
func (NopListener) OnStackSizeChanged(int) {}
func (NopListener) OnHighlightPlaceable([]*game.Spot) {}
func (NopListener) OnStateChanged(State) {}
func (NopListener) OnGameOver([]*game.Player) {}
func (NopListener) OnWelcome(string, int) {}
