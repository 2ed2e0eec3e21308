package game

import (
	"fmt"
	"strings"
)

// TileType identifies one kind of tile of the base game.
type TileType int

const (
	Null TileType = iota
	Monastery
	MonasteryRoad
	CastleCenter
	CastleCenterSide
	CastleCenterSideEmblem
	CastleCenterSideRoad
	CastleCenterSideRoadEmblem
	CastleEdge
	CastleEdgeEmblem
	CastleEdgeRoad
	CastleEdgeRoadEmblem
	CastleTube
	CastleTubeEmblem
	CastleSides
	CastleSidesEdge
	CastleCap
	CastleWallRoad
	CastleWallCurveLeft
	CastleWallCurveRight
	CastleWallJunction
	Road
	RoadCurve
	RoadJunctionSmall
	RoadJunctionLarge
)

// Foundation is the tile every grid starts with.
const Foundation = CastleWallRoad

type tileSpec struct {
	name    string
	terrain [9]TerrainType
	emblem  bool
	links   [][2]Direction
	count   int

	// derived
	connections [9][9]bool
	slots       [9]bool
}

// terrainOf reads a compact layout: edges in order T R B L, corners in order
// TR BR BL TL and the middle. C castle, R road, F fields, M monastery,
// O other.
func terrainOf(edges, corners, middle string) [9]TerrainType {
	var out [9]TerrainType
	letters := edges + corners + middle
	if len(letters) != 9 {
		panic(fmt.Sprintf("tile layout %q/%q/%q must have nine positions", edges, corners, middle))
	}
	for i, r := range letters {
		switch r {
		case 'C':
			out[i] = TerrainCastle
		case 'R':
			out[i] = TerrainRoad
		case 'F':
			out[i] = TerrainFields
		case 'M':
			out[i] = TerrainMonastery
		case 'O':
			out[i] = TerrainOther
		default:
			panic(fmt.Sprintf("unknown terrain letter %q", r))
		}
	}
	return out
}

var wallLink = [][2]Direction{{TopLeft, TopRight}}

var tileSpecs = map[TileType]*tileSpec{
	Null:                       {name: "NULL", terrain: terrainOf("OOOO", "OOOO", "O")},
	Monastery:                  {name: "MONASTERY", terrain: terrainOf("FFFF", "FFFF", "M"), count: 4},
	MonasteryRoad:              {name: "MONASTERY_ROAD", terrain: terrainOf("FFRF", "FFFF", "M"), count: 2},
	CastleCenter:               {name: "CASTLE_CENTER", terrain: terrainOf("CCCC", "CCCC", "C"), emblem: true, count: 1},
	CastleCenterSide:           {name: "CASTLE_CENTER_SIDE", terrain: terrainOf("CCFC", "CFFC", "C"), count: 3},
	CastleCenterSideEmblem:     {name: "CASTLE_CENTER_SIDE_EMBLEM", terrain: terrainOf("CCFC", "CFFC", "C"), emblem: true, count: 1},
	CastleCenterSideRoad:       {name: "CASTLE_CENTER_SIDE_ROAD", terrain: terrainOf("CCRC", "CFFC", "C"), count: 1},
	CastleCenterSideRoadEmblem: {name: "CASTLE_CENTER_SIDE_ROAD_EMBLEM", terrain: terrainOf("CCRC", "CFFC", "C"), emblem: true, count: 2},
	CastleEdge:                 {name: "CASTLE_EDGE", terrain: terrainOf("CFFC", "FFFC", "C"), count: 3},
	CastleEdgeEmblem:           {name: "CASTLE_EDGE_EMBLEM", terrain: terrainOf("CFFC", "FFFC", "C"), emblem: true, count: 2},
	CastleEdgeRoad:             {name: "CASTLE_EDGE_ROAD", terrain: terrainOf("CRRC", "FFFC", "R"), links: [][2]Direction{{TopRight, BottomLeft}}, count: 3},
	CastleEdgeRoadEmblem:       {name: "CASTLE_EDGE_ROAD_EMBLEM", terrain: terrainOf("CRRC", "FFFC", "R"), emblem: true, links: [][2]Direction{{TopRight, BottomLeft}}, count: 2},
	CastleTube:                 {name: "CASTLE_TUBE", terrain: terrainOf("FCFC", "FFFF", "C"), count: 1},
	CastleTubeEmblem:           {name: "CASTLE_TUBE_EMBLEM", terrain: terrainOf("FCFC", "FFFF", "C"), emblem: true, count: 2},
	CastleSides:                {name: "CASTLE_SIDES", terrain: terrainOf("CFCF", "FFFF", "F"), count: 3},
	CastleSidesEdge:            {name: "CASTLE_SIDES_EDGE", terrain: terrainOf("CFFC", "FFFF", "F"), count: 2},
	CastleCap:                  {name: "CASTLE_CAP", terrain: terrainOf("CFFF", "FFFF", "F"), count: 5},
	CastleWallRoad:             {name: "CASTLE_WALL_ROAD", terrain: terrainOf("CRFR", "FFFF", "R"), links: wallLink, count: 3},
	CastleWallCurveLeft:        {name: "CASTLE_WALL_CURVE_LEFT", terrain: terrainOf("CFRR", "FFFF", "R"), links: wallLink, count: 3},
	CastleWallCurveRight:       {name: "CASTLE_WALL_CURVE_RIGHT", terrain: terrainOf("CRRF", "FFFF", "R"), links: wallLink, count: 3},
	CastleWallJunction:         {name: "CASTLE_WALL_JUNCTION", terrain: terrainOf("CRRR", "FFFF", "O"), links: wallLink, count: 3},
	Road:                       {name: "ROAD", terrain: terrainOf("RFRF", "FFFF", "R"), count: 8},
	RoadCurve:                  {name: "ROAD_CURVE", terrain: terrainOf("FFRR", "FFFF", "R"), count: 9},
	RoadJunctionSmall:          {name: "ROAD_JUNCTION_SMALL", terrain: terrainOf("FRRR", "FFFF", "O"), count: 4},
	RoadJunctionLarge:          {name: "ROAD_JUNCTION_LARGE", terrain: terrainOf("RRRR", "FFFF", "O"), count: 1},
}

func init() {
	for _, spec := range tileSpecs {
		spec.connections = buildConnections(spec.terrain, spec.links)
		spec.slots = buildSlots(spec.terrain, spec.connections)
	}
}

// buildConnections closes the three connection rules transitively with a
// small union-find over the nine positions.
func buildConnections(terrain [9]TerrainType, links [][2]Direction) [9][9]bool {
	var parent [9]int
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b Direction) {
		if terrain[a] != terrain[b] || !terrain[a].IsFeature() {
			return
		}
		parent[find(int(a))] = find(int(b))
	}

	for i, d := range ring {
		union(d, ring[(i+1)%len(ring)])
		union(d, Middle)
	}
	for _, link := range links {
		union(link[0], link[1])
	}

	var out [9][9]bool
	for a := 0; a < 9; a++ {
		for b := 0; b < 9; b++ {
			out[a][b] = terrain[a].IsFeature() && find(a) == find(b)
		}
	}
	return out
}

// buildSlots picks one meeple position per feature: the middle if the
// feature reaches it, else the first edge, else the first corner.
func buildSlots(terrain [9]TerrainType, connections [9][9]bool) [9]bool {
	var slots [9]bool
	covered := func(pos Direction) bool {
		for _, other := range TilePositions() {
			if slots[other] && connections[pos][other] {
				return true
			}
		}
		return false
	}
	order := append([]Direction{Middle}, Neighbors()...)
	for _, pos := range order {
		if terrain[pos].IsFeature() && !covered(pos) {
			slots[pos] = true
		}
	}
	return slots
}

func (t TileType) spec() *tileSpec {
	if spec, ok := tileSpecs[t]; ok {
		return spec
	}
	return tileSpecs[Null]
}

func (t TileType) String() string {
	return t.spec().name
}

// Count is how many tiles of this type a full stack holds.
func (t TileType) Count() int {
	return t.spec().count
}

// HasEmblem reports whether the castle on this tile carries an emblem.
func (t TileType) HasEmblem() bool {
	return t.spec().emblem
}

// TileTypes returns every real tile type, Null excluded, in declaration order.
func TileTypes() []TileType {
	out := make([]TileType, 0, len(tileSpecs)-1)
	for t := Monastery; t <= RoadJunctionLarge; t++ {
		out = append(out, t)
	}
	return out
}

func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TileType) UnmarshalText(text []byte) error {
	parsed, err := ParseTileType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTileType resolves a wire name such as "ROAD_CURVE".
func ParseTileType(s string) (TileType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, spec := range tileSpecs {
		if spec.name == name {
			return t, nil
		}
	}
	return Null, fmt.Errorf("unknown tile type %q", s)
}
