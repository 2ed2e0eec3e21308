// Package room runs the turn state machine of one participant: it applies
// local actions, replays remote ones and keeps a Listener informed.
package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"carcassonne/internal/config"
	"carcassonne/internal/errors"
	"carcassonne/internal/game"
	"carcassonne/internal/shared"
)

// Config holds the dependencies of a Controller.
type Config struct {
	Settings *config.Settings
	Game     config.Game
	Listener Listener
	// Sender is nil for hot-seat play where every seat is local.
	Sender Sender
	// Seeder provides the shuffle seed of locally created rounds.
	Seeder func() int64
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Settings == nil {
		return errors.InvalidArgument("settings are required")
	}
	if c.Game.BoardWidth < 1 || c.Game.BoardHeight < 1 {
		return errors.InvalidArgumentf("board size %dx%d must be positive", c.Game.BoardWidth, c.Game.BoardHeight)
	}
	return nil
}

// Controller serialises all actions on a round behind one mutex.
type Controller struct {
	mu       sync.Mutex
	settings *config.Settings
	game     config.Game
	listener Listener
	sender   Sender
	seeder   func() int64

	round *game.Round
	state State
	own   int // seat played on this machine, -1 for all seats
}

// NewController creates a controller in the idle state.
func NewController(cfg *Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid controller config")
	}
	listener := cfg.Listener
	if listener == nil {
		listener = NopListener{}
	}
	seeder := cfg.Seeder
	if seeder == nil {
		seeder = func() int64 { return time.Now().UnixNano() }
	}
	return &Controller{
		settings: cfg.Settings,
		game:     cfg.Game,
		listener: listener,
		sender:   cfg.Sender,
		seeder:   seeder,
		state:    StateIdle,
		own:      -1,
	}, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Round returns the current round, nil while idle.
func (c *Controller) Round() *game.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

// OwnPlayer is the seat played locally, -1 in hot-seat mode.
func (c *Controller) OwnPlayer() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.own
}

// NewRound starts a hot-seat round with playerCount local players. With a
// Sender it asks the server instead; the round begins once GAME_START arrives.
// Only legal while Idle or GameOver.
func (c *Controller) NewRound(ctx context.Context, playerCount int) error {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateGameOver {
		state := c.state
		c.mu.Unlock()
		return errors.IllegalAction("new round", state.String())
	}
	if c.sender != nil {
		defer c.mu.Unlock()
		if err := c.sender.SendGameStart(ctx); err != nil {
			return errors.Wrap(err, "failed to request game start")
		}
		return nil
	}
	c.mu.Unlock()

	seed := game.NewSeed(c.game.BoardWidth, c.game.BoardHeight, playerCount, c.settings.Shuffle(), c.seeder())
	return c.StartRound(seed, -1)
}

// StartRound builds the round described by seed. own is the seat played on
// this machine, or -1 if every seat is.
func (c *Controller) StartRound(seed game.Seed, own int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle && c.state != StateGameOver {
		return errors.IllegalAction("start round", c.state.String())
	}
	if own < -1 || own >= seed.PlayerCount {
		return errors.InvalidArgumentf("own player %d outside [-1,%d)", own, seed.PlayerCount)
	}
	round, err := seed.Build(c.settings)
	if err != nil {
		return errors.Wrap(err, "failed to build round")
	}
	c.round = round
	c.own = own

	slog.Info("Round started",
		"players", round.PlayerCount(),
		"own_player", own,
		"tiles", round.TotalTiles(),
		"board", []int{seed.BoardWidth, seed.BoardHeight})

	c.listener.OnTilePlaced(round.Grid().Foundation().Tile())
	for _, p := range round.Players() {
		c.listener.OnScoreChanged(p)
	}
	c.startNextTurn()
	return nil
}

// Abort drops the current round from any state.
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.round != nil {
		slog.Info("Round aborted", "state", c.state.String())
	}
	c.round = nil
	c.own = -1
	c.setState(StateIdle)
}

// RotateTile turns the tile in hand by steps quarter turns, clockwise for
// positive values.
func (c *Controller) RotateTile(steps int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlacing {
		return errors.IllegalAction("rotate tile", c.state.String())
	}
	c.round.CurrentTile().Rotate(steps)
	return nil
}

// PlaceTile puts the tile in hand on (x, y).
func (c *Controller) PlaceTile(ctx context.Context, x, y int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlacing {
		return errors.IllegalAction("place tile", c.state.String())
	}
	tile := c.round.CurrentTile()
	if !c.round.Grid().CanPlace(x, y, tile) {
		return errors.InvalidArgumentf("%s does not fit at (%d,%d)", tile, x, y)
	}
	if c.sender != nil {
		msg := shared.TilePlaced{
			Player:   c.round.ActivePlayerIndex(),
			Tile:     tile.Type(),
			X:        x,
			Y:        y,
			Rotation: tile.Rotation(),
		}
		if err := c.sender.SendTilePlaced(ctx, msg); err != nil {
			return errors.Wrap(err, "failed to send tile placement")
		}
	}
	c.placeTile(x, y, tile)
	return c.enterManning(ctx)
}

// IsPlaceable reports whether the active player may put a meeple on pos of
// the tile just placed.
func (c *Controller) IsPlaceable(pos game.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateManning && c.isPlaceable(pos)
}

// PlaceMeeple puts a meeple of the active player on pos and ends the turn.
func (c *Controller) PlaceMeeple(ctx context.Context, pos game.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateManning {
		return errors.IllegalAction("place meeple", c.state.String())
	}
	if !c.isPlaceable(pos) {
		return errors.InvalidArgumentf("cannot place a meeple on %s of %s", pos, c.round.CurrentTile())
	}
	if c.sender != nil {
		if err := c.sender.SendMeeplePlaced(ctx, c.meepleMessage(&pos)); err != nil {
			return errors.Wrap(err, "failed to send meeple placement")
		}
	}
	if _, err := c.placeMeeple(pos); err != nil {
		return err
	}
	c.finishTurn()
	return nil
}

// SkipMeeple ends the turn without placing a meeple.
func (c *Controller) SkipMeeple(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateManning {
		return errors.IllegalAction("skip meeple", c.state.String())
	}
	return c.skipMeeple(ctx)
}

// Skip passes on the current phase: an unplaceable tile while placing, the
// meeple while manning.
func (c *Controller) Skip(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StatePlacing:
		if c.sender != nil {
			msg := shared.PlacingSkipped{Player: c.round.ActivePlayerIndex()}
			if err := c.sender.SendPlacingSkipped(ctx, msg); err != nil {
				return errors.Wrap(err, "failed to send skip")
			}
		}
		c.skipPlacing()
		return nil
	case StateManning:
		return c.skipMeeple(ctx)
	}
	return errors.IllegalAction("skip", c.state.String())
}

func (c *Controller) skipMeeple(ctx context.Context) error {
	if c.sender != nil {
		if err := c.sender.SendMeeplePlaced(ctx, c.meepleMessage(nil)); err != nil {
			return errors.Wrap(err, "failed to send meeple skip")
		}
	}
	c.finishTurn()
	return nil
}

func (c *Controller) setState(s State) {
	c.state = s
	c.listener.OnStateChanged(s)
}

func (c *Controller) isLocalTurn() bool {
	return c.own < 0 || c.round.ActivePlayerIndex() == c.own
}

func (c *Controller) isPlaceable(pos game.Direction) bool {
	tile := c.round.CurrentTile()
	player := c.round.ActivePlayer()
	if tile == nil || !tile.IsPlaced() || tile.HasMeeple() || !player.HasFreeMeeples() || !tile.HasMeepleSlot(pos) {
		return false
	}
	pattern := c.round.Grid().PatternFrom(tile.Spot(), pos)
	return pattern != nil && !pattern.IsOccupied()
}

func (c *Controller) meepleMessage(pos *game.Direction) shared.MeeplePlaced {
	spot := c.round.CurrentTile().Spot()
	return shared.MeeplePlaced{
		Player:    c.round.ActivePlayerIndex(),
		X:         spot.X(),
		Y:         spot.Y(),
		Direction: pos,
	}
}

// placeTile puts the tile on the grid and realigns it. Coordinates sent to
// peers are always those before alignment.
func (c *Controller) placeTile(x, y int, tile *game.Tile) bool {
	if !c.round.Grid().Place(x, y, tile) {
		return false
	}
	c.round.SetGrid(c.round.Grid().Align())
	c.listener.OnTilePlaced(tile)
	return true
}

func (c *Controller) placeMeeple(pos game.Direction) (*game.Meeple, error) {
	meeple, err := c.round.CurrentTile().PlaceMeeple(c.round.ActivePlayer(), pos)
	if err != nil {
		return nil, err
	}
	c.listener.OnMeeplePlaced(meeple)
	c.listener.OnScoreChanged(meeple.Owner())
	return meeple, nil
}

// enterManning skips the meeple phase for players without free meeples.
func (c *Controller) enterManning(ctx context.Context) error {
	if c.round.ActivePlayer().HasFreeMeeples() {
		c.setState(StateManning)
		return nil
	}
	slog.Debug("No free meeples, skipping manning", "player", c.round.ActivePlayerIndex())
	if c.sender != nil {
		if err := c.sender.SendMeeplePlaced(ctx, c.meepleMessage(nil)); err != nil {
			c.setState(StateManning)
			return errors.Wrap(err, "failed to send meeple skip")
		}
	}
	c.finishTurn()
	return nil
}

func (c *Controller) skipPlacing() {
	if c.round.IsOver() {
		c.finishRound()
		return
	}
	c.round.SkipCurrentTile()
	c.startNextTurn()
}

// finishTurn pays out the patterns the turn completed and moves on.
func (c *Controller) finishTurn() {
	c.disburse(c.round.Grid().PatternsAt(c.round.CurrentTile().Spot()), false)
	c.startNextTurn()
}

func (c *Controller) startNextTurn() {
	if c.round.IsOver() {
		c.finishRound()
		return
	}
	c.round.NextTurn()
	c.listener.OnStackSizeChanged(c.round.StackSize())
	if !c.isLocalTurn() {
		c.setState(StateWaiting)
		return
	}
	c.setState(StatePlacing)
	c.listener.OnHighlightPlaceable(c.round.Grid().PlaceableSpots(c.round.CurrentTile()))
}

func (c *Controller) finishRound() {
	c.disburse(c.round.Grid().AllPatterns(), true)
	winners := c.round.WinningPlayers()
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name()
	}
	slog.Info("Round over", "winners", names)
	c.setState(StateGameOver)
	c.listener.OnGameOver(winners)
}

type placement struct {
	owner *game.Player
	tile  *game.Tile
	pos   game.Direction
}

func (c *Controller) disburse(patterns []*game.Pattern, force bool) {
	for _, pattern := range patterns {
		var returned []placement
		for _, m := range pattern.Meeples() {
			returned = append(returned, placement{owner: m.Owner(), tile: m.Tile(), pos: m.Position()})
		}
		var winners []*game.Player
		if force {
			winners = pattern.ForceDisburse()
		} else {
			winners = pattern.Disburse()
		}
		if len(winners) == 0 {
			continue
		}
		slog.Debug("Pattern disbursed",
			"pattern", pattern.String(),
			"value", pattern.Value(),
			"winners", len(winners))

		touched := make(map[*game.Player]bool)
		for _, w := range winners {
			touched[w] = true
		}
		for _, r := range returned {
			c.listener.OnMeepleRemoved(r.tile, r.pos)
			touched[r.owner] = true
		}
		for _, p := range c.round.Players() {
			if touched[p] {
				c.listener.OnScoreChanged(p)
			}
		}
	}
}
