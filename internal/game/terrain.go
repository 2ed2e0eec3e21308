package game

import (
	"fmt"
	"strings"
)

// TerrainType is the kind of landscape at one position of a tile.
type TerrainType int

const (
	TerrainOther TerrainType = iota // no feature, e.g. the centre of a crossroad
	TerrainCastle
	TerrainRoad
	TerrainFields
	TerrainMonastery
	TerrainWall // reserved, never scored
)

var terrainNames = map[TerrainType]string{
	TerrainOther:     "OTHER",
	TerrainCastle:    "CASTLE",
	TerrainRoad:      "ROAD",
	TerrainFields:    "FIELDS",
	TerrainMonastery: "MONASTERY",
	TerrainWall:      "WALL",
}

// ScoredTerrains lists the categories a player can score in.
var ScoredTerrains = []TerrainType{TerrainCastle, TerrainRoad, TerrainMonastery, TerrainFields}

func (t TerrainType) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TerrainType(%d)", int(t))
}

// IsFeature reports whether the terrain can form a scorable pattern.
func (t TerrainType) IsFeature() bool {
	switch t {
	case TerrainCastle, TerrainRoad, TerrainFields, TerrainMonastery:
		return true
	}
	return false
}

func (t TerrainType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TerrainType) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for terrain, n := range terrainNames {
		if n == name {
			*t = terrain
			return nil
		}
	}
	return fmt.Errorf("unknown terrain %q", text)
}
