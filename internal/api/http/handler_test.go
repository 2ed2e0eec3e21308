package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	api "carcassonne/internal/api/http"
	"carcassonne/internal/api/ws"
	"carcassonne/internal/config"
	"carcassonne/internal/errors"
	"carcassonne/internal/pkg/idgen"
	"carcassonne/internal/relay"
	"carcassonne/internal/shared"
	"carcassonne/internal/store"
)

type fakeSubmitter struct {
	mu   sync.Mutex
	reqs []relay.Request
	resp shared.Response
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, req relay.Request) (shared.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return shared.Failure(errors.GetMessage(f.err)), f.err
	}
	return f.resp, nil
}

type HandlerTestSuite struct {
	suite.Suite
	submitter *fakeSubmitter
	router    *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.submitter = &fakeSubmitter{resp: shared.OK()}
	hub, err := ws.NewHub(&ws.Config{Lobby: store.NewMemoryStore(), IDs: idgen.NewSequential("sub"), IdleTimeout: time.Minute})
	s.Require().NoError(err)
	s.router = api.NewRouter(api.RouterConfig{
		Hub:       hub,
		Submitter: s.submitter,
		IDs:       idgen.NewSequential("conn"),
		Game:      config.Game{BoardWidth: 12, BoardHeight: 8, MeeplesPerPlayer: 7, Shuffle: true},
	})
}

func (s *HandlerTestSuite) do(method, path, body, subscriber string) (*httptest.ResponseRecorder, shared.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if subscriber != "" {
		req.Header.Set(shared.HeaderSubscriberID, subscriber)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp shared.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *HandlerTestSuite) TestConnectHandsOutConnectionID() {
	w, resp := s.do(http.MethodPost, "/api/rooms/ABCD/connections", `{"role":"request"}`, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(shared.CodeOK, resp.Code)
	s.Equal("conn_1", resp.ConnectionID)
	s.Equal(12, resp.BoardWidth)
	s.Equal(8, resp.BoardHeight)
}

func (s *HandlerTestSuite) TestConnectRejectsPubSubRole() {
	w, resp := s.do(http.MethodPost, "/api/rooms/ABCD/connections", `{"role":"pub-sub"}`, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(shared.CodeError, resp.Code)
	s.Contains(resp.Message, "/ws")
}

func (s *HandlerTestSuite) TestTilePlacedIsSubmitted() {
	body := `{"player":1,"tile":"ROAD_CURVE","x":4,"y":3,"rotation":2}`
	w, resp := s.do(http.MethodPost, "/api/rooms/ABCD/tile-placed", body, "sub_7")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(shared.CodeOK, resp.Code)

	s.Require().Len(s.submitter.reqs, 1)
	req := s.submitter.reqs[0]
	s.Equal("ABCD", req.Room)
	s.Equal("sub_7", req.Originator)
	s.Equal(shared.ActionTilePlaced, req.Action)
	placed, ok := req.Payload.(shared.TilePlaced)
	s.Require().True(ok)
	s.Equal(1, placed.Player)
	s.Equal(4, placed.X)
	s.Equal(2, placed.Rotation)
}

func (s *HandlerTestSuite) TestMeeplePlacedWithoutDirection() {
	w, _ := s.do(http.MethodPost, "/api/rooms/ABCD/meeple-placed", `{"player":0,"x":1,"y":1}`, "sub_1")
	s.Equal(http.StatusOK, w.Code)
	placed := s.submitter.reqs[0].Payload.(shared.MeeplePlaced)
	s.Nil(placed.Direction)
}

func (s *HandlerTestSuite) TestGameStartAcceptsEmptyBody() {
	w, _ := s.do(http.MethodPost, "/api/rooms/ABCD/game-start", "", "sub_1")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(shared.ActionGameStart, s.submitter.reqs[0].Action)
}

func (s *HandlerTestSuite) TestMissingSubscriberHeader() {
	w, resp := s.do(http.MethodPost, "/api/rooms/ABCD/placing-skipped", `{"player":0}`, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(resp.Message, shared.HeaderSubscriberID)
	s.Empty(s.submitter.reqs)
}

func (s *HandlerTestSuite) TestInvalidPayload() {
	w, _ := s.do(http.MethodPost, "/api/rooms/ABCD/tile-placed", `{"tile":"NO_SUCH_TILE"}`, "sub_1")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.submitter.reqs)
}

func (s *HandlerTestSuite) TestErrorsMapToStatus() {
	cases := []struct {
		err    error
		status int
	}{
		{errors.ResourceExhausted("queue full"), http.StatusTooManyRequests},
		{errors.NotFoundf("no subscriber"), http.StatusNotFound},
		{errors.New(errors.CodeFailedPrecondition, "too few"), http.StatusPreconditionFailed},
	}
	for _, tc := range cases {
		s.submitter.err = tc.err
		w, resp := s.do(http.MethodPost, "/api/rooms/ABCD/placing-skipped", `{"player":0}`, "sub_1")
		s.Equal(tc.status, w.Code)
		s.Equal(shared.CodeError, resp.Code)
	}
}

func (s *HandlerTestSuite) TestConfigAndHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	s.Equal(http.StatusOK, w.Code)
	var cfg api.ConfigResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &cfg))
	s.Equal(7, cfg.MeeplesPerPlayer)
	s.Equal(config.MaxPlayers, cfg.MaxPlayers)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}
