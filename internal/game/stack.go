package game

import "math/rand"

// TileStack is the face-down pile of tiles still to be drawn.
type TileStack struct {
	tiles []*Tile // next draw first
}

// NewTileStack builds the full base-game stack. With shuffle set, the order
// is a permutation derived from seed; otherwise tiles come in type order.
func NewTileStack(shuffle bool, seed int64) *TileStack {
	var types []TileType
	for _, t := range TileTypes() {
		for i := 0; i < t.Count(); i++ {
			types = append(types, t)
		}
	}
	if shuffle {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })
	}
	return NewTileStackOf(types)
}

// NewTileStackOf builds a stack that hands out the given types in order.
func NewTileStackOf(types []TileType) *TileStack {
	s := &TileStack{tiles: make([]*Tile, 0, len(types))}
	for _, t := range types {
		s.tiles = append(s.tiles, NewTile(t))
	}
	return s
}

// Draw removes and returns the next tile, or nil when the stack is empty.
func (s *TileStack) Draw() *Tile {
	if len(s.tiles) == 0 {
		return nil
	}
	t := s.tiles[0]
	s.tiles = s.tiles[1:]
	return t
}

// PutBack returns an unplaced tile to the bottom of the stack.
func (s *TileStack) PutBack(t *Tile) {
	if t == nil || t.IsPlaced() {
		return
	}
	s.tiles = append(s.tiles, t)
}

func (s *TileStack) Size() int { return len(s.tiles) }

func (s *TileStack) IsEmpty() bool { return len(s.tiles) == 0 }

// Types lists the remaining tile types in draw order.
func (s *TileStack) Types() []TileType {
	out := make([]TileType, len(s.tiles))
	for i, t := range s.tiles {
		out[i] = t.kind
	}
	return out
}
