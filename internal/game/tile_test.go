package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcassonne/internal/game"
)

func TestDirectionRing(t *testing.T) {
	assert.Equal(t, game.Bottom, game.Top.Opposite())
	assert.Equal(t, game.BottomLeft, game.TopRight.Opposite())
	assert.Equal(t, game.TopRight, game.Top.Next(1))
	assert.Equal(t, game.TopLeft, game.Top.Next(-1))
	assert.Equal(t, game.Right, game.Top.Next(2))
	assert.Equal(t, game.Middle, game.Middle.Next(3))

	for _, d := range game.TilePositions() {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back game.Direction
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}
	_, err := game.ParseDirection("UP")
	assert.Error(t, err)
}

func TestFullRotationRestoresTerrain(t *testing.T) {
	for _, kind := range game.TileTypes() {
		tile := game.NewTile(kind)
		before := make(map[game.Direction]game.TerrainType)
		for _, pos := range game.TilePositions() {
			before[pos] = tile.TerrainAt(pos)
		}
		for i := 0; i < 4; i++ {
			tile.RotateRight()
		}
		assert.Equal(t, 0, tile.Rotation(), kind.String())
		for _, pos := range game.TilePositions() {
			assert.Equal(t, before[pos], tile.TerrainAt(pos), "%s at %s", kind, pos)
		}
	}
}

func TestRotateRightMovesTopToRight(t *testing.T) {
	tile := game.NewTile(game.CastleCap)
	tile.RotateRight()

	assert.Equal(t, game.TerrainCastle, tile.TerrainAt(game.Right))
	assert.Equal(t, game.TerrainFields, tile.TerrainAt(game.Top))

	tile.Rotate(-5)
	assert.Equal(t, 0, tile.Rotation())
	assert.Equal(t, game.TerrainCastle, tile.TerrainAt(game.Top))
}

func TestConnections(t *testing.T) {
	tests := []struct {
		name     string
		kind     game.TileType
		from, to game.Direction
		want     bool
	}{
		{"road runs through", game.Road, game.Top, game.Bottom, true},
		{"fields split by road", game.Road, game.Left, game.Right, false},
		{"road and field never connect", game.Road, game.Top, game.TopRight, false},
		{"castle wall links the upper fields", game.CastleWallRoad, game.TopLeft, game.TopRight, true},
		{"castle wall keeps lower field apart", game.CastleWallRoad, game.TopLeft, game.Bottom, false},
		{"edge road links outer field", game.CastleEdgeRoad, game.TopRight, game.BottomLeft, true},
		{"edge road inner field apart", game.CastleEdgeRoad, game.TopRight, game.BottomRight, false},
		{"junction centre ends roads", game.RoadJunctionLarge, game.Top, game.Bottom, false},
		{"tube castle through middle", game.CastleTube, game.Left, game.Right, true},
		{"tube fields apart", game.CastleTube, game.Top, game.Bottom, false},
		{"monastery stands alone", game.Monastery, game.Middle, game.Top, false},
		{"null connects nothing", game.Null, game.Top, game.Top, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := game.NewTile(tt.kind)
			assert.Equal(t, tt.want, tile.Connects(tt.from, tt.to))
			assert.Equal(t, tt.want, tile.Connects(tt.to, tt.from))
		})
	}
}

func TestConnectionsFollowRotation(t *testing.T) {
	tile := game.NewRotatedTile(game.Road, 1)

	assert.True(t, tile.Connects(game.Left, game.Right))
	assert.False(t, tile.Connects(game.Top, game.Bottom))
}

func TestMeepleSlots(t *testing.T) {
	assert.Equal(t, []game.Direction{game.Right, game.Left, game.Middle}, game.NewTile(game.Road).MeepleSlots())
	assert.Equal(t, []game.Direction{game.Middle}, game.NewTile(game.CastleCenter).MeepleSlots())
	assert.Equal(t, game.Neighbors(), game.NewTile(game.RoadJunctionLarge).MeepleSlots())

	rotated := game.NewRotatedTile(game.Road, 1)
	assert.Equal(t, []game.Direction{game.Top, game.Bottom, game.Middle}, rotated.MeepleSlots())
	assert.Empty(t, game.NewTile(game.Null).MeepleSlots())
}

func TestPlaceMeepleRequiresPlacedTile(t *testing.T) {
	player := game.NewPlayer(0, "A", 1)
	tile := game.NewTile(game.Road)

	_, err := tile.PlaceMeeple(player, game.Middle)
	assert.Error(t, err)
	assert.Equal(t, 1, player.FreeMeeples())
}

func TestCanConnectTo(t *testing.T) {
	road := game.NewTile(game.Road)
	castleDown := game.NewRotatedTile(game.CastleCap, 2)

	assert.True(t, road.CanConnectTo(game.Top, game.NewTile(game.Road)))
	assert.False(t, road.CanConnectTo(game.Top, castleDown))
	assert.True(t, game.NewTile(game.CastleCap).CanConnectTo(game.Top, castleDown))
}

func TestTileTypeWireNames(t *testing.T) {
	text, err := game.RoadJunctionSmall.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ROAD_JUNCTION_SMALL", string(text))

	parsed, err := game.ParseTileType("castle_wall_road")
	require.NoError(t, err)
	assert.Equal(t, game.CastleWallRoad, parsed)

	_, err = game.ParseTileType("DRAGON")
	assert.Error(t, err)
}
