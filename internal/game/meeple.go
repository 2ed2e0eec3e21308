package game

// Meeple is a playing figure owned by one player. It is free while it has no tile.
type Meeple struct {
	owner    *Player
	tile     *Tile
	position Direction
}

func (m *Meeple) Owner() *Player { return m.owner }

func (m *Meeple) Tile() *Tile { return m.tile }

func (m *Meeple) Position() Direction { return m.position }

func (m *Meeple) IsPlaced() bool { return m.tile != nil }
