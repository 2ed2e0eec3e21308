package game_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"carcassonne/internal/game"
)

type PatternTestSuite struct {
	suite.Suite
	grid  *game.Grid
	alice *game.Player
	bob   *game.Player
}

func (s *PatternTestSuite) SetupTest() {
	grid, err := game.NewGrid(12, 8)
	s.Require().NoError(err)
	s.grid = grid
	s.alice = game.NewPlayer(0, "alice", 7)
	s.bob = game.NewPlayer(1, "bob", 7)
}

func TestPatternSuite(t *testing.T) {
	suite.Run(t, new(PatternTestSuite))
}

func (s *PatternTestSuite) place(x, y int, kind game.TileType, rotation int) *game.Tile {
	tile := game.NewRotatedTile(kind, rotation)
	s.Require().True(s.grid.Place(x, y, tile), "place %s at (%d,%d)", kind, x, y)
	return tile
}

func (s *PatternTestSuite) meeple(tile *game.Tile, player *game.Player, pos game.Direction) {
	_, err := tile.PlaceMeeple(player, pos)
	s.Require().NoError(err)
}

func (s *PatternTestSuite) TestFoundationPatterns() {
	patterns := s.grid.PatternsAt(s.grid.Foundation())

	s.Len(patterns, 4)
	kinds := map[game.TerrainType]int{}
	for _, p := range patterns {
		kinds[p.Terrain()]++
		s.False(p.IsComplete())
		s.Equal(1, p.Size())
	}
	s.Equal(map[game.TerrainType]int{game.TerrainCastle: 1, game.TerrainRoad: 1, game.TerrainFields: 2}, kinds)
	s.Len(s.grid.AllPatterns(), 4)
}

func (s *PatternTestSuite) TestLonelyMonasteryIsIncomplete() {
	monastery := s.place(9, 6, game.Monastery, 0)

	pattern := s.grid.PatternFrom(monastery.Spot(), game.Middle)

	s.Require().NotNil(pattern)
	s.Equal(game.PatternMonastery, pattern.Kind())
	s.False(pattern.IsComplete())
	s.Equal(1, pattern.Size())
	s.Equal(1, pattern.Value())
}

func (s *PatternTestSuite) TestSurroundedMonasteryIsComplete() {
	monastery := s.place(1, 1, game.Monastery, 0)
	s.meeple(monastery, s.alice, game.Middle)
	for _, dir := range game.Neighbors() {
		s.place(1+dir.DX(), 1+dir.DY(), game.Road, 0)
	}

	pattern := s.grid.PatternFrom(monastery.Spot(), game.Middle)

	s.True(pattern.IsComplete())
	s.Equal(9, pattern.Size())
	s.Equal(9, pattern.Value())
	s.Equal([]*game.Player{s.alice}, pattern.Disburse())
	s.Equal(9, s.alice.ScoreFor(game.TerrainMonastery))
	s.Equal(7, s.alice.FreeMeeples())
}

func (s *PatternTestSuite) TestMonasteryFoundFromNeighbour() {
	s.place(1, 1, game.Monastery, 0)
	road := s.place(2, 2, game.Road, 0)

	var monasteries int
	for _, p := range s.grid.PatternsAt(road.Spot()) {
		if p.Kind() == game.PatternMonastery {
			monasteries++
			s.Equal(2, p.Size())
		}
	}
	s.Equal(1, monasteries)
}

func (s *PatternTestSuite) TestClosedCastleLoop() {
	topLeft := s.place(0, 0, game.CastleEdge, 2)
	s.place(1, 0, game.CastleEdge, 3)
	s.place(0, 1, game.CastleEdge, 1)
	s.place(1, 1, game.CastleEdge, 0)

	pattern := s.grid.PatternFrom(topLeft.Spot(), game.Right)

	s.Require().NotNil(pattern)
	s.Equal(game.TerrainCastle, pattern.Terrain())
	s.True(pattern.IsComplete())
	s.Equal(4, pattern.Size())
	s.Equal(8, pattern.Value())
}

func (s *PatternTestSuite) TestEmblemsRaiseCastleValue() {
	topLeft := s.place(0, 0, game.CastleEdgeEmblem, 2)
	s.place(1, 0, game.CastleEdge, 3)
	s.place(0, 1, game.CastleEdgeEmblem, 1)
	s.place(1, 1, game.CastleEdge, 0)

	pattern := s.grid.PatternFrom(topLeft.Spot(), game.Bottom)

	s.True(pattern.IsComplete())
	s.Equal(12, pattern.Value())
}

func (s *PatternTestSuite) TestTiedRoadSplitsRoundedUp() {
	left := s.place(4, 3, game.RoadJunctionSmall, 0)
	right := s.place(6, 3, game.RoadJunctionSmall, 0)
	s.meeple(left, s.alice, game.Right)
	s.meeple(right, s.bob, game.Left)

	pattern := s.grid.PatternFrom(s.grid.Foundation(), game.Left)

	s.Require().NotNil(pattern)
	s.True(pattern.IsComplete())
	s.Equal(3, pattern.Size())
	s.Equal(1, pattern.MeepleCount(s.alice))
	s.Equal(1, pattern.MeepleCount(s.bob))

	winners := pattern.Disburse()

	s.Equal([]*game.Player{s.alice, s.bob}, winners)
	s.Equal(2, s.alice.Score())
	s.Equal(2, s.bob.ScoreFor(game.TerrainRoad))
	s.Equal(7, s.alice.FreeMeeples())
	s.Equal(7, s.bob.FreeMeeples())
	s.False(left.HasMeeple())
	s.True(pattern.IsDisbursed())

	s.Nil(pattern.Disburse())
	s.Nil(s.grid.PatternFrom(s.grid.Foundation(), game.Left).Disburse())
	s.Equal(2, s.alice.Score())
}

func (s *PatternTestSuite) TestMajorityTakesAll() {
	left := s.place(4, 3, game.RoadJunctionSmall, 0)
	right := s.place(6, 3, game.RoadJunctionSmall, 0)
	s.meeple(left, s.alice, game.Right)
	s.meeple(s.grid.Foundation().Tile(), s.alice, game.Middle)
	s.meeple(right, s.bob, game.Left)

	pattern := s.grid.PatternFrom(right.Spot(), game.Left)

	s.Equal([]*game.Player{s.alice}, pattern.Disburse())
	s.Equal(3, s.alice.Score())
	s.Zero(s.bob.Score())
	s.Equal(7, s.bob.FreeMeeples())
}

func (s *PatternTestSuite) TestOpenRoadOnlyPaysWhenForced() {
	right := s.place(6, 3, game.RoadJunctionSmall, 0)
	s.meeple(right, s.bob, game.Left)

	pattern := s.grid.PatternFrom(right.Spot(), game.Left)

	s.False(pattern.IsComplete())
	s.Nil(pattern.Disburse())
	s.Zero(s.bob.Score())

	s.Equal([]*game.Player{s.bob}, pattern.ForceDisburse())
	s.Equal(2, s.bob.Score())
	s.Nil(pattern.ForceDisburse())
}

func (s *PatternTestSuite) TestFieldCountsCompletedCastles() {
	upper := s.place(0, 0, game.CastleCap, 2)
	lower := s.place(0, 1, game.CastleCap, 0)
	s.meeple(upper, s.alice, game.Middle)

	castle := s.grid.PatternFrom(upper.Spot(), game.Bottom)
	s.True(castle.IsComplete())
	s.Equal(4, castle.Value())

	field := s.grid.PatternFrom(upper.Spot(), game.Top)
	s.Equal(game.PatternFields, field.Kind())
	s.False(field.IsComplete())
	s.Equal(1, field.AdjacentCastles())
	s.Equal(1, field.Size(), "castle edge separates the fields")
	s.False(field.Contains(lower.Spot()))

	s.Equal([]*game.Player{s.alice}, field.ForceDisburse())
	s.Equal(3, s.alice.ScoreFor(game.TerrainFields))
}

func (s *PatternTestSuite) TestFieldIgnoresOpenCastle() {
	field := s.grid.PatternFrom(s.grid.Foundation(), game.TopLeft)

	s.Require().NotNil(field)
	s.Zero(field.AdjacentCastles())
	s.Zero(field.Value())
	s.True(field.Contains(s.grid.Foundation()))
}

func (s *PatternTestSuite) TestMeepleOnOtherFeatureDoesNotCount() {
	right := s.place(6, 3, game.RoadJunctionSmall, 0)
	s.meeple(right, s.bob, game.Bottom)

	pattern := s.grid.PatternFrom(right.Spot(), game.Left)

	s.False(pattern.IsOccupied())
	s.Zero(pattern.MeepleCount(s.bob))
}

func (s *PatternTestSuite) TestAllPatternsListsEachOnce() {
	s.place(4, 3, game.RoadJunctionSmall, 0)
	s.place(6, 3, game.RoadJunctionSmall, 0)

	var roads []*game.Pattern
	for _, p := range s.grid.AllPatterns() {
		if p.Terrain() == game.TerrainRoad && p.Contains(s.grid.Foundation()) {
			roads = append(roads, p)
		}
	}
	s.Len(roads, 1)
	s.Equal(3, roads[0].Size())
}
