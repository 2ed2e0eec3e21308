package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carcassonne/internal/api/ws"
	"carcassonne/internal/config"
	"carcassonne/internal/errors"
	"carcassonne/internal/pkg/idgen"
	"carcassonne/internal/relay"
	"carcassonne/internal/shared"
)

// respond writes resp with the status matching err.
func respond(c *gin.Context, resp shared.Response, err error) {
	if err != nil {
		if resp.Code != shared.CodeError {
			resp = shared.Failure(errors.GetMessage(err))
		}
		c.JSON(errors.GetCode(err).HTTPStatus(), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Open a request connection
// @Description Hands out a connection id for the request/response channel. Pub-sub connections use /ws.
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body shared.NewConnection true "Connection role"
// @Success 200 {object} shared.Response
// @Router /api/rooms/{code}/connections [post]
func ConnectHandler(ids idgen.Generator, game config.Game) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shared.NewConnection
		if err := c.ShouldBindJSON(&req); err != nil {
			respond(c, shared.Response{}, errors.InvalidArgument("role required"))
			return
		}
		if req.Role != shared.RoleRequest {
			respond(c, shared.Response{}, errors.InvalidArgumentf("role %q is not served here, pub-sub connections use /ws", req.Role))
			return
		}
		resp := shared.OK()
		resp.ConnectionID = ids.Generate()
		resp.BoardWidth = game.BoardWidth
		resp.BoardHeight = game.BoardHeight
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary Start a round
// @Description Seats every subscriber of the room and broadcasts GAME_START
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param X-Subscriber-ID header string true "Subscriber id"
// @Param request body shared.GameStart false "Round options"
// @Success 200 {object} shared.Response
// @Router /api/rooms/{code}/game-start [post]
func GameStartHandler(s ws.Submitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shared.GameStart
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respond(c, shared.Response{}, errors.InvalidArgument("invalid payload"))
				return
			}
		}
		submit(c, s, shared.ActionGameStart, req)
	}
}

// @Summary Announce a tile placement
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param X-Subscriber-ID header string true "Subscriber id"
// @Param request body shared.TilePlaced true "Placement"
// @Success 200 {object} shared.Response
// @Router /api/rooms/{code}/tile-placed [post]
func TilePlacedHandler(s ws.Submitter) gin.HandlerFunc {
	return turnHandler[shared.TilePlaced](s, shared.ActionTilePlaced)
}

// @Summary Announce a meeple placement, or none
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param X-Subscriber-ID header string true "Subscriber id"
// @Param request body shared.MeeplePlaced true "Placement"
// @Success 200 {object} shared.Response
// @Router /api/rooms/{code}/meeple-placed [post]
func MeeplePlacedHandler(s ws.Submitter) gin.HandlerFunc {
	return turnHandler[shared.MeeplePlaced](s, shared.ActionMeeplePlaced)
}

// @Summary Announce a skipped tile
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param X-Subscriber-ID header string true "Subscriber id"
// @Param request body shared.PlacingSkipped true "Skip"
// @Success 200 {object} shared.Response
// @Router /api/rooms/{code}/placing-skipped [post]
func PlacingSkippedHandler(s ws.Submitter) gin.HandlerFunc {
	return turnHandler[shared.PlacingSkipped](s, shared.ActionPlacingSkipped)
}

func turnHandler[T any](s ws.Submitter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			respond(c, shared.Response{}, errors.InvalidArgument("invalid payload"))
			return
		}
		submit(c, s, action, req)
	}
}

func submit(c *gin.Context, s ws.Submitter, action string, payload any) {
	originator := c.GetHeader(shared.HeaderSubscriberID)
	if originator == "" {
		respond(c, shared.Response{}, errors.InvalidArgumentf("%s header required", shared.HeaderSubscriberID))
		return
	}
	resp, err := s.Submit(c.Request.Context(), relay.Request{
		Room:       c.Param("code"),
		Originator: originator,
		Action:     action,
		Payload:    payload,
	})
	respond(c, resp, err)
}
