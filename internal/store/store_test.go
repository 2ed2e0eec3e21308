package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"carcassonne/internal/errors"
	"carcassonne/internal/store"
	"carcassonne/internal/testutils"
)

// StoreTestSuite runs the same behaviour against every Store implementation.
type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	newFn func() store.Store
	store store.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newFn()
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newFn: func() store.Store { return store.NewMemoryStore() }})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newFn: func() store.Store {
		client, _ := testutils.CreateTestRedisClient(t)
		st, err := store.NewRedisStore(&store.RedisConfig{Client: client, Prefix: "test"})
		if err != nil {
			t.Fatal(err)
		}
		return st
	}})
}

func (s *StoreTestSuite) TestJoinOrder() {
	for i, id := range []string{"a", "b", "c"} {
		n, err := s.store.AddSubscriber(s.ctx, "ROOM", id)
		s.Require().NoError(err)
		s.Equal(i+1, n)
	}

	ids, err := s.store.Subscribers(s.ctx, "ROOM")
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, ids)
}

func (s *StoreTestSuite) TestAddIsIdempotent() {
	_, err := s.store.AddSubscriber(s.ctx, "ROOM", "a")
	s.Require().NoError(err)
	n, err := s.store.AddSubscriber(s.ctx, "ROOM", "a")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *StoreTestSuite) TestRoomsAreSeparate() {
	_, err := s.store.AddSubscriber(s.ctx, "ONE", "a")
	s.Require().NoError(err)

	ids, err := s.store.Subscribers(s.ctx, "TWO")
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *StoreTestSuite) TestRemove() {
	for _, id := range []string{"a", "b"} {
		_, err := s.store.AddSubscriber(s.ctx, "ROOM", id)
		s.Require().NoError(err)
	}

	s.Require().NoError(s.store.RemoveSubscriber(s.ctx, "ROOM", "a"))
	s.Require().NoError(s.store.RemoveSubscriber(s.ctx, "ROOM", "missing"))

	ids, err := s.store.Subscribers(s.ctx, "ROOM")
	s.Require().NoError(err)
	s.Equal([]string{"b"}, ids)
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	_, err := store.NewRedisStore(&store.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
