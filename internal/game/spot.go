package game

import "fmt"

// Spot is one cell of the grid. A spot holds at most one tile, forever.
type Spot struct {
	x, y int
	tile *Tile
}

func (s *Spot) X() int { return s.x }

func (s *Spot) Y() int { return s.y }

func (s *Spot) Tile() *Tile { return s.tile }

func (s *Spot) IsFree() bool { return s.tile == nil }

func (s *Spot) IsOccupied() bool { return s.tile != nil }

// set puts tile on the spot; it refuses occupied spots and empty tiles.
func (s *Spot) set(tile *Tile) bool {
	if s.tile != nil || tile == nil || tile.kind == Null {
		return false
	}
	s.tile = tile
	tile.spot = s
	return true
}

func (s *Spot) String() string {
	return fmt.Sprintf("(%d,%d)", s.x, s.y)
}
