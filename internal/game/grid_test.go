package game_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"carcassonne/internal/errors"
	"carcassonne/internal/game"
)

type GridTestSuite struct {
	suite.Suite
	grid *game.Grid
}

func (s *GridTestSuite) SetupTest() {
	grid, err := game.NewGrid(12, 8)
	s.Require().NoError(err)
	s.grid = grid
}

func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridTestSuite))
}

func (s *GridTestSuite) spot(x, y int) *game.Spot {
	spot, err := s.grid.Spot(x, y)
	s.Require().NoError(err)
	return spot
}

func (s *GridTestSuite) TestFoundationInCentre() {
	foundation := s.grid.Foundation()
	s.Equal(5, foundation.X())
	s.Equal(3, foundation.Y())
	s.Equal(game.CastleWallRoad, foundation.Tile().Type())
	s.Same(foundation, foundation.Tile().Spot())
}

func (s *GridTestSuite) TestNewGridRejectsEmptySize() {
	_, err := game.NewGrid(0, 4)
	s.True(errors.IsInvalidArgument(err))
}

func (s *GridTestSuite) TestPlace() {
	s.Run("free spot", func() {
		s.True(s.grid.Place(0, 0, game.NewTile(game.Road)))
	})
	s.Run("occupied spot", func() {
		s.False(s.grid.Place(5, 3, game.NewTile(game.Road)))
	})
	s.Run("out of bounds", func() {
		s.False(s.grid.Place(12, 0, game.NewTile(game.Road)))
		s.False(s.grid.Place(-1, 0, game.NewTile(game.Road)))
	})
	s.Run("null tile", func() {
		s.False(s.grid.Place(1, 1, game.NewTile(game.Null)))
	})
	s.Run("nil tile", func() {
		s.False(s.grid.Place(2, 2, nil))
	})
}

func (s *GridTestSuite) TestSpotOutOfRange() {
	_, err := s.grid.Spot(99, 99)
	s.True(errors.IsOutOfRange(err))
}

func (s *GridTestSuite) TestCanPlace() {
	s.True(s.grid.CanPlace(6, 3, game.NewRotatedTile(game.Road, 1)))
	s.False(s.grid.CanPlace(6, 3, game.NewTile(game.Road)), "field edge against road")
	s.False(s.grid.CanPlace(9, 6, game.NewTile(game.Road)), "no neighbour")
	s.False(s.grid.CanPlace(5, 3, game.NewTile(game.Road)), "occupied")
	s.True(s.grid.CanPlace(5, 2, game.NewRotatedTile(game.CastleCap, 2)))
}

func (s *GridTestSuite) TestPlaceableSpots() {
	var coords [][2]int
	for _, spot := range s.grid.PlaceableSpots(game.NewTile(game.Road)) {
		coords = append(coords, [2]int{spot.X(), spot.Y()})
	}
	s.ElementsMatch([][2]int{{4, 3}, {6, 3}, {5, 4}}, coords)
}

func (s *GridTestSuite) TestNeighbors() {
	foundation := s.grid.Foundation()
	s.Len(s.grid.Neighbors(foundation, true), 8)
	s.Empty(s.grid.Neighbors(foundation, false))

	s.Require().True(s.grid.Place(6, 3, game.NewRotatedTile(game.Road, 1)))
	s.Len(s.grid.Neighbors(foundation, false), 1)
	s.Len(s.grid.Neighbors(foundation, true, game.Top, game.Middle), 1)
	s.NotNil(s.grid.Neighbor(foundation, game.Right))
	s.Nil(s.grid.Neighbor(foundation, game.Left))
}

func (s *GridTestSuite) TestCopyGrownKeepsTilesCentred() {
	grid, err := game.NewGrid(10, 10)
	s.Require().NoError(err)
	road := game.NewRotatedTile(game.Road, 1)
	s.Require().True(grid.Place(5, 4, road))

	grown, err := grid.CopyGrown(12, 12)
	s.Require().NoError(err)

	s.Equal(12, grown.Width())
	s.Equal(12, grown.Height())
	s.Equal(5, grown.Foundation().X())
	s.Equal(5, grown.Foundation().Y())
	s.Equal(6, road.Spot().X())
	s.Equal(5, road.Spot().Y())
	moved, err := grown.Spot(6, 5)
	s.Require().NoError(err)
	s.Same(road, moved.Tile())
}

func (s *GridTestSuite) TestCopyGrownRejectsOddOrNegativeGrowth() {
	_, err := s.grid.CopyGrown(13, 8)
	s.True(errors.IsInvalidArgument(err))
	_, err = s.grid.CopyGrown(10, 8)
	s.True(errors.IsInvalidArgument(err))
}

func (s *GridTestSuite) TestAlignRecentres() {
	for x := 6; x <= 8; x++ {
		s.Require().True(s.grid.Place(x, 3, game.NewRotatedTile(game.Road, 1)))
	}

	aligned := s.grid.Align()

	s.Same(s.grid, aligned)
	s.Equal(4, aligned.Foundation().X())
	minX, _, maxX, _ := aligned.Bounds()
	s.Equal(4, minX)
	s.Equal(7, maxX)
}

func (s *GridTestSuite) TestAlignGrowsNearBorder() {
	for y := 0; y < 8; y++ {
		if y == 3 {
			continue
		}
		s.Require().True(s.grid.Place(5, y, game.NewTile(game.Road)))
	}
	s.True(s.grid.NeedsResize())

	aligned := s.grid.Align()

	s.Equal(16, aligned.Width())
	s.Equal(12, aligned.Height())
	s.False(aligned.NeedsResize())
	s.Len(aligned.Occupied(), 8)
	foundation := aligned.Foundation()
	s.Equal(7, foundation.X())
	s.Equal(5, foundation.Y())
	s.Equal(game.CastleWallRoad, foundation.Tile().Type())
	s.Same(foundation, foundation.Tile().Spot())
}

func (s *GridTestSuite) TestIsFull() {
	grid, err := game.NewGrid(1, 1)
	s.Require().NoError(err)
	s.True(grid.IsFull())
	s.False(s.grid.IsFull())
}

func (s *GridTestSuite) TestIsClosingFreeSpotsOff() {
	grid, err := game.NewGrid(5, 5)
	s.Require().NoError(err)
	spot, err := grid.Spot(1, 1)
	s.Require().NoError(err)

	s.False(grid.IsClosingFreeSpotsOff(spot, game.Right))

	s.Require().True(grid.Place(3, 1, game.NewTile(game.Road)))
	s.Require().True(grid.Place(2, 0, game.NewTile(game.Road)))
	s.True(grid.IsClosingFreeSpotsOff(spot, game.Right))
	s.False(grid.IsClosingFreeSpotsOff(spot, game.Left))
}
