package game

import (
	"fmt"
	"strings"
)

// Direction names a neighbour on the grid as seen from a spot, or a position
// on a tile. The order matters: edges come first, then corners, then the
// middle.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
	TopRight
	BottomRight
	BottomLeft
	TopLeft
	Middle
)

// ring is the clockwise cycle of the eight outer positions.
var ring = [8]Direction{Top, TopRight, Right, BottomRight, Bottom, BottomLeft, Left, TopLeft}

var ringIndex = func() [9]int {
	var idx [9]int
	for i, d := range ring {
		idx[d] = i
	}
	idx[Middle] = -1
	return idx
}()

var directionNames = [9]string{"TOP", "RIGHT", "BOTTOM", "LEFT", "TOP_RIGHT", "BOTTOM_RIGHT", "BOTTOM_LEFT", "TOP_LEFT", "MIDDLE"}

func (d Direction) String() string {
	if d < Top || d > Middle {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the upper-case wire names, case insensitive.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return Middle, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Next walks steps positions clockwise around the ring (negative walks
// counterclockwise). The middle stays where it is.
func (d Direction) Next(steps int) Direction {
	if d == Middle {
		return d
	}
	i := ((ringIndex[d]+steps)%8 + 8) % 8
	return ring[i]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d.Next(4)
}

// IsEdge reports whether d is one of TOP, RIGHT, BOTTOM or LEFT.
func (d Direction) IsEdge() bool {
	return d >= Top && d <= Left
}

// IsCorner reports whether d is one of the four diagonal positions.
func (d Direction) IsCorner() bool {
	return d >= TopRight && d <= TopLeft
}

// DX is the x offset of the neighbour in this direction.
func (d Direction) DX() int {
	switch d {
	case TopRight, Right, BottomRight:
		return 1
	case TopLeft, Left, BottomLeft:
		return -1
	}
	return 0
}

// DY is the y offset of the neighbour in this direction. The y axis points down.
func (d Direction) DY() int {
	switch d {
	case BottomLeft, Bottom, BottomRight:
		return 1
	case TopLeft, Top, TopRight:
		return -1
	}
	return 0
}

// DirectNeighbors returns TOP, RIGHT, BOTTOM and LEFT.
func DirectNeighbors() []Direction {
	return []Direction{Top, Right, Bottom, Left}
}

// IndirectNeighbors returns the four diagonal directions.
func IndirectNeighbors() []Direction {
	return []Direction{TopRight, BottomRight, BottomLeft, TopLeft}
}

// Neighbors returns all directions except MIDDLE.
func Neighbors() []Direction {
	return []Direction{Top, Right, Bottom, Left, TopRight, BottomRight, BottomLeft, TopLeft}
}

// TilePositions returns all nine positions of a tile.
func TilePositions() []Direction {
	return []Direction{Top, Right, Bottom, Left, TopRight, BottomRight, BottomLeft, TopLeft, Middle}
}
