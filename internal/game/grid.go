package game

import (
	"carcassonne/internal/errors"
)

const (
	// A resize is due when a tile comes closer than lowMargin to x=0/y=0 or
	// closer than highMargin to the exclusive bound width/height.
	lowMargin  = 2
	highMargin = 3
)

// Grid is the board: a width×height matrix of spots, indexed [y][x] with
// the origin at the top left.
type Grid struct {
	width, height int
	spots         [][]*Spot
	foundation    *Spot
}

// NewGrid creates an empty board and puts the foundation tile in its centre.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.InvalidArgumentf("grid size %dx%d must be positive", width, height)
	}
	g := newEmptyGrid(width, height)
	g.foundation = g.spots[(height-1)/2][(width-1)/2]
	g.foundation.set(NewTile(Foundation))
	return g, nil
}

func newEmptyGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, spots: make([][]*Spot, height)}
	for y := range g.spots {
		g.spots[y] = make([]*Spot, width)
		for x := range g.spots[y] {
			g.spots[y][x] = &Spot{x: x, y: y}
		}
	}
	return g
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

func (g *Grid) Foundation() *Spot { return g.foundation }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Spot returns the spot at (x, y) or an OutOfRange error.
func (g *Grid) Spot(x, y int) (*Spot, error) {
	if !g.InBounds(x, y) {
		return nil, errors.OutOfRangef("spot (%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
	return g.spots[y][x], nil
}

func (g *Grid) at(x, y int) *Spot {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.spots[y][x]
}

// Place puts tile on the free spot at (x, y). Edge continuity is not checked.
func (g *Grid) Place(x, y int, tile *Tile) bool {
	spot := g.at(x, y)
	if spot == nil {
		return false
	}
	return spot.set(tile)
}

// CanPlace reports whether tile, in its current rotation, may go to (x, y):
// the spot is free, touches at least one tile and every touching edge matches.
func (g *Grid) CanPlace(x, y int, tile *Tile) bool {
	spot := g.at(x, y)
	if spot == nil || spot.IsOccupied() || tile == nil || tile.kind == Null {
		return false
	}
	touching := false
	for _, dir := range DirectNeighbors() {
		nb := g.Neighbor(spot, dir)
		if nb == nil {
			continue
		}
		if !tile.CanConnectTo(dir, nb.tile) {
			return false
		}
		touching = true
	}
	return touching
}

// PlaceableSpots lists the free spots where the tile fits in at least one rotation.
func (g *Grid) PlaceableSpots(tile *Tile) []*Spot {
	var out []*Spot
	for _, row := range g.spots {
		for _, spot := range row {
			if spot.IsOccupied() {
				continue
			}
			for r := 0; r < 4; r++ {
				if g.CanPlace(spot.x, spot.y, NewRotatedTile(tile.kind, r)) {
					out = append(out, spot)
					break
				}
			}
		}
	}
	return out
}

// Neighbor returns the occupied spot next to spot in direction dir, or nil.
func (g *Grid) Neighbor(spot *Spot, dir Direction) *Spot {
	nb := g.at(spot.x+dir.DX(), spot.y+dir.DY())
	if nb == nil || nb.IsFree() || nb == spot {
		return nil
	}
	return nb
}

// Neighbors lists the in-bounds spots around spot in the given directions,
// all eight when none are given. Free spots are skipped unless includeEmpty.
func (g *Grid) Neighbors(spot *Spot, includeEmpty bool, dirs ...Direction) []*Spot {
	if len(dirs) == 0 {
		dirs = Neighbors()
	}
	var out []*Spot
	for _, dir := range dirs {
		if dir == Middle {
			continue
		}
		nb := g.at(spot.x+dir.DX(), spot.y+dir.DY())
		if nb == nil || (!includeEmpty && nb.IsFree()) {
			continue
		}
		out = append(out, nb)
	}
	return out
}

func (g *Grid) IsFull() bool {
	for _, row := range g.spots {
		for _, spot := range row {
			if spot.IsFree() {
				return false
			}
		}
	}
	return true
}

// Occupied returns the occupied spots row by row.
func (g *Grid) Occupied() []*Spot {
	var out []*Spot
	for _, row := range g.spots {
		for _, spot := range row {
			if spot.IsOccupied() {
				out = append(out, spot)
			}
		}
	}
	return out
}

// Bounds returns the inclusive bounding box of all occupied spots.
func (g *Grid) Bounds() (minX, minY, maxX, maxY int) {
	minX, minY = g.width, g.height
	maxX, maxY = -1, -1
	for _, spot := range g.Occupied() {
		minX = min(minX, spot.x)
		minY = min(minY, spot.y)
		maxX = max(maxX, spot.x)
		maxY = max(maxY, spot.y)
	}
	return minX, minY, maxX, maxY
}

// NeedsResize reports whether the occupied area comes too close to a border.
func (g *Grid) NeedsResize() bool {
	minX, minY, maxX, maxY := g.Bounds()
	if maxX < 0 {
		return false
	}
	return minX < lowMargin || minY < lowMargin ||
		g.width-maxX < highMargin || g.height-maxY < highMargin
}

// CopyGrown returns a larger grid holding the same tiles, shifted by half the
// growth so the content keeps its place relative to the centre. The tiles are
// moved, not copied: afterwards they point at spots of the new grid.
func (g *Grid) CopyGrown(width, height int) (*Grid, error) {
	dw, dh := width-g.width, height-g.height
	if dw < 0 || dh < 0 || dw%2 != 0 || dh%2 != 0 {
		return nil, errors.InvalidArgumentf("cannot grow %dx%d grid to %dx%d: growth must be even and non-negative",
			g.width, g.height, width, height)
	}
	grown := newEmptyGrid(width, height)
	for _, spot := range g.Occupied() {
		target := grown.spots[spot.y+dh/2][spot.x+dw/2]
		target.tile = spot.tile
		spot.tile.spot = target
	}
	grown.foundation = grown.spots[g.foundation.y+dh/2][g.foundation.x+dw/2]
	return grown, nil
}

// Align recentres the occupied area and regrows the grid while tiles sit
// too close to a border. The result replaces g, which must not be used again.
func (g *Grid) Align() *Grid {
	g.recenter()
	for g.NeedsResize() {
		grown, err := g.CopyGrown(g.width+2, g.height+2)
		if err != nil {
			return g
		}
		g = grown
		g.recenter()
	}
	return g
}

func (g *Grid) recenter() {
	minX, minY, maxX, maxY := g.Bounds()
	if maxX < 0 {
		return
	}
	dx := ((g.width - 1 - maxX) - minX) / 2
	dy := ((g.height - 1 - maxY) - minY) / 2
	if dx != 0 || dy != 0 {
		g.move(dx, dy)
	}
}

// move shifts every tile by (dx, dy). The caller keeps the shift in bounds.
func (g *Grid) move(dx, dy int) {
	occupied := g.Occupied()
	foundation := g.foundation
	moved := make([]*Tile, len(occupied))
	for i, spot := range occupied {
		moved[i] = spot.tile
		spot.tile = nil
	}
	for i, spot := range occupied {
		target := g.spots[spot.y+dy][spot.x+dx]
		target.tile = moved[i]
		moved[i].spot = target
	}
	g.foundation = g.spots[foundation.y+dy][foundation.x+dx]
}

// IsClosingFreeSpotsOff reports whether placing a tile at the free spot
// would cut its free neighbour in direction dir off from the grid border,
// leaving a hole that can never be filled from outside.
func (g *Grid) IsClosingFreeSpotsOff(spot *Spot, dir Direction) bool {
	start := g.at(spot.x+dir.DX(), spot.y+dir.DY())
	if start == nil || start.IsOccupied() {
		return false
	}
	seen := map[*Spot]bool{spot: true, start: true}
	queue := []*Spot{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range DirectNeighbors() {
			x, y := current.x+d.DX(), current.y+d.DY()
			if !g.InBounds(x, y) {
				return false
			}
			next := g.spots[y][x]
			if next.IsOccupied() || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return true
}
