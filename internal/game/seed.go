package game

import (
	"carcassonne/internal/config"
	"carcassonne/internal/errors"
)

// Seed is everything needed to start identical rounds on every peer.
type Seed struct {
	BoardWidth  int        `json:"boardWidth"`
	BoardHeight int        `json:"boardHeight"`
	PlayerCount int        `json:"playerCount"`
	Stack       []TileType `json:"stack"`
}

// NewSeed fixes the stack order of a fresh round.
func NewSeed(width, height, players int, shuffle bool, seed int64) Seed {
	return Seed{
		BoardWidth:  width,
		BoardHeight: height,
		PlayerCount: players,
		Stack:       NewTileStack(shuffle, seed).Types(),
	}
}

// Build creates the round described by the seed. No turn has started yet.
func (s Seed) Build(settings *config.Settings) (*Round, error) {
	grid, err := NewGrid(s.BoardWidth, s.BoardHeight)
	if err != nil {
		return nil, err
	}
	for _, t := range s.Stack {
		if t.Count() == 0 {
			return nil, errors.InvalidArgumentf("seed contains unusable tile %s", t)
		}
	}
	return NewRound(s.PlayerCount, settings, grid, NewTileStackOf(s.Stack))
}
