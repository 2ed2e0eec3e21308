package game

import (
	"fmt"

	"carcassonne/internal/errors"
)

// Tile is one physical tile: a type, a rotation and, once placed, the spot it
// lies on and at most one meeple.
type Tile struct {
	kind     TileType
	rotation int
	spot     *Spot
	meeple   *Meeple
}

func NewTile(kind TileType) *Tile {
	return &Tile{kind: kind}
}

// NewRotatedTile creates a tile already turned clockwise by rotation quarter turns.
func NewRotatedTile(kind TileType, rotation int) *Tile {
	t := &Tile{kind: kind}
	t.Rotate(rotation)
	return t
}

func (t *Tile) Type() TileType { return t.kind }

// Rotation is the number of clockwise quarter turns, always in [0,4).
func (t *Tile) Rotation() int { return t.rotation }

func (t *Tile) Spot() *Spot { return t.spot }

func (t *Tile) IsPlaced() bool { return t.spot != nil }

func (t *Tile) Meeple() *Meeple { return t.meeple }

func (t *Tile) HasMeeple() bool { return t.meeple != nil }

// HasMeepleAt reports whether a meeple stands on the given position.
func (t *Tile) HasMeepleAt(pos Direction) bool {
	return t.meeple != nil && t.meeple.position == pos
}

func (t *Tile) HasEmblem() bool { return t.kind.HasEmblem() }

func (t *Tile) IsMonastery() bool { return t.TerrainAt(Middle) == TerrainMonastery }

// base maps a position of the rotated tile back to the unrotated layout.
// One clockwise quarter turn is two steps around the ring.
func (t *Tile) base(pos Direction) Direction {
	return pos.Next(-2 * t.rotation)
}

func (t *Tile) TerrainAt(pos Direction) TerrainType {
	return t.kind.spec().terrain[t.base(pos)]
}

// Connects reports whether two positions belong to the same feature on this tile.
func (t *Tile) Connects(from, to Direction) bool {
	return t.kind.spec().connections[t.base(from)][t.base(to)]
}

// Rotate turns the tile by steps quarter turns, clockwise for positive steps.
// Placed tiles keep their orientation.
func (t *Tile) Rotate(steps int) {
	if t.spot != nil {
		return
	}
	t.rotation = ((t.rotation+steps)%4 + 4) % 4
}

func (t *Tile) RotateRight() { t.Rotate(1) }

func (t *Tile) RotateLeft() { t.Rotate(-1) }

// HasMeepleSlot reports whether a meeple may be put on pos.
func (t *Tile) HasMeepleSlot(pos Direction) bool {
	return t.kind.spec().slots[t.base(pos)]
}

// MeepleSlots lists the positions a meeple may be put on, in TilePositions order.
func (t *Tile) MeepleSlots() []Direction {
	var out []Direction
	for _, pos := range TilePositions() {
		if t.HasMeepleSlot(pos) {
			out = append(out, pos)
		}
	}
	return out
}

// CanConnectTo reports whether other may lie next to t in direction dir.
func (t *Tile) CanConnectTo(dir Direction, other *Tile) bool {
	return t.TerrainAt(dir) == other.TerrainAt(dir.Opposite())
}

// PlaceMeeple takes a free meeple from player and puts it on pos. The
// pattern check (is the feature already occupied) is the caller's job.
func (t *Tile) PlaceMeeple(player *Player, pos Direction) (*Meeple, error) {
	switch {
	case t.spot == nil:
		return nil, errors.InvalidArgument("tile is not placed")
	case t.meeple != nil:
		return nil, errors.InvalidArgumentf("tile %s already carries a meeple", t.kind)
	case !t.HasMeepleSlot(pos):
		return nil, errors.InvalidArgumentf("no meeple slot at %s on %s", pos, t.kind)
	}
	m := player.takeMeeple()
	if m == nil {
		return nil, errors.ResourceExhausted(fmt.Sprintf("player %s has no free meeples", player.Name()))
	}
	m.tile = t
	m.position = pos
	t.meeple = m
	return m, nil
}

// RemoveMeeple returns the meeple on this tile to its owner.
func (t *Tile) RemoveMeeple() {
	if t.meeple == nil {
		return
	}
	t.meeple.tile = nil
	t.meeple.position = Middle
	t.meeple = nil
}

func (t *Tile) String() string {
	if t.spot != nil {
		return fmt.Sprintf("%s@(%d,%d)r%d", t.kind, t.spot.x, t.spot.y, t.rotation)
	}
	return fmt.Sprintf("%sr%d", t.kind, t.rotation)
}
