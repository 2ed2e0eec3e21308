package game

import (
	"carcassonne/internal/config"
	"carcassonne/internal/errors"
)

// Round is one game: the players, the grid, the stack and whose turn it is.
type Round struct {
	players []*Player
	active  int
	current *Tile
	stack   *TileStack
	grid    *Grid
	total   int
}

// NewRound seats playerCount players named after settings. The foundation
// counts as the tile in hand until the first NextTurn.
func NewRound(playerCount int, settings *config.Settings, grid *Grid, stack *TileStack) (*Round, error) {
	if playerCount < config.MinPlayers || playerCount > config.MaxPlayers {
		return nil, errors.InvalidArgumentf("player count %d outside [%d,%d]", playerCount, config.MinPlayers, config.MaxPlayers)
	}
	if grid == nil || stack == nil {
		return nil, errors.InvalidArgument("round needs a grid and a stack")
	}
	r := &Round{
		active:  -1,
		current: grid.Foundation().Tile(),
		stack:   stack,
		grid:    grid,
	}
	for i := 0; i < playerCount; i++ {
		r.players = append(r.players, NewPlayer(i, settings.PlayerName(i), settings.Meeples()))
	}
	r.total = stack.Size() + len(grid.Occupied())
	return r, nil
}

// NextTurn hands the turn to the next player and draws a tile.
func (r *Round) NextTurn() {
	r.active = (r.active + 1) % len(r.players)
	r.current = r.stack.Draw()
}

// SkipCurrentTile puts the tile in hand back under the stack.
func (r *Round) SkipCurrentTile() {
	if r.current != nil && !r.current.IsPlaced() {
		r.stack.PutBack(r.current)
	}
	r.current = nil
}

// IsOver reports whether the grid is full or no tile is left to draw.
func (r *Round) IsOver() bool {
	return r.grid.IsFull() || r.stack.IsEmpty()
}

// ActivePlayer returns the player on turn, nil before the first turn.
func (r *Round) ActivePlayer() *Player {
	if r.active < 0 {
		return nil
	}
	return r.players[r.active]
}

func (r *Round) ActivePlayerIndex() int { return r.active }

func (r *Round) Player(i int) (*Player, error) {
	if i < 0 || i >= len(r.players) {
		return nil, errors.OutOfRangef("player index %d outside [0,%d)", i, len(r.players))
	}
	return r.players[i], nil
}

func (r *Round) Players() []*Player {
	return append([]*Player(nil), r.players...)
}

func (r *Round) PlayerCount() int { return len(r.players) }

func (r *Round) CurrentTile() *Tile { return r.current }

func (r *Round) StackSize() int { return r.stack.Size() }

func (r *Round) Grid() *Grid { return r.grid }

// SetGrid swaps in the grid returned by Grid.Align.
func (r *Round) SetGrid(g *Grid) { r.grid = g }

// TileCount is stack + placed + the tile in hand; it never changes over a round.
func (r *Round) TileCount() int {
	n := r.stack.Size() + len(r.grid.Occupied())
	if r.current != nil && !r.current.IsPlaced() {
		n++
	}
	return n
}

// TotalTiles is the tile count fixed when the round was created.
func (r *Round) TotalTiles() int { return r.total }

// WinningPlayers returns all players sharing the highest score.
func (r *Round) WinningPlayers() []*Player {
	best := 0
	for _, p := range r.players {
		best = max(best, p.Score())
	}
	var out []*Player
	for _, p := range r.players {
		if p.Score() == best {
			out = append(out, p)
		}
	}
	return out
}
