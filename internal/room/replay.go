package room

import (
	"carcassonne/internal/errors"
	"carcassonne/internal/shared"
)

// ApplyTilePlaced replays a tile placement made by the remote active player.
func (c *Controller) ApplyTilePlaced(msg shared.TilePlaced) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expectRemote("tile placed", msg.Player, false); err != nil {
		return err
	}
	tile := c.round.CurrentTile()
	if tile.Type() != msg.Tile {
		return errors.Desyncf("peer placed %s but the drawn tile is %s", msg.Tile, tile.Type())
	}
	if msg.Rotation < 0 || msg.Rotation > 3 {
		return errors.Desyncf("peer sent rotation %d", msg.Rotation)
	}
	tile.Rotate(msg.Rotation - tile.Rotation())
	if !c.round.Grid().CanPlace(msg.X, msg.Y, tile) || !c.placeTile(msg.X, msg.Y, tile) {
		return errors.Desyncf("peer placed %s at (%d,%d) where it does not fit", tile, msg.X, msg.Y)
	}
	return nil
}

// ApplyMeeplePlaced replays the meeple decision of the remote active player
// and ends their turn.
func (c *Controller) ApplyMeeplePlaced(msg shared.MeeplePlaced) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expectRemote("meeple placed", msg.Player, true); err != nil {
		return err
	}
	if msg.Direction != nil {
		spot := c.round.CurrentTile().Spot()
		if spot.X() != msg.X || spot.Y() != msg.Y {
			return errors.Desyncf("peer placed a meeple on (%d,%d) but the tile lies on (%d,%d)", msg.X, msg.Y, spot.X(), spot.Y())
		}
		if !c.isPlaceable(*msg.Direction) {
			return errors.Desyncf("peer placed a meeple on %s where none fits", *msg.Direction)
		}
		if _, err := c.placeMeeple(*msg.Direction); err != nil {
			return errors.WrapWithCode(err, errors.CodeAborted, "failed to replay meeple placement")
		}
	}
	c.finishTurn()
	return nil
}

// ApplyPlacingSkipped replays a remote player passing on an unplaceable tile.
func (c *Controller) ApplyPlacingSkipped(msg shared.PlacingSkipped) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.expectRemote("placing skipped", msg.Player, false); err != nil {
		return err
	}
	c.skipPlacing()
	return nil
}

// expectRemote checks that a remote action fits the turn: it is somebody
// else's turn, the sender is on turn and the tile in hand is (not) placed yet.
func (c *Controller) expectRemote(action string, player int, placed bool) error {
	switch c.state {
	case StateWaiting:
	case StatePlacing, StateManning:
		return errors.Desyncf("%s by player %d during a local turn", action, player)
	default:
		return errors.IllegalAction(action, c.state.String())
	}
	if active := c.round.ActivePlayerIndex(); player != active {
		return errors.Desyncf("%s by player %d during the turn of player %d", action, player, active)
	}
	tile := c.round.CurrentTile()
	if tile == nil || tile.IsPlaced() != placed {
		return errors.Desyncf("%s out of order", action)
	}
	return nil
}
