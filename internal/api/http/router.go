package http

import (
	"github.com/gin-gonic/gin"

	"carcassonne/internal/api/ws"
	"carcassonne/internal/config"
	"carcassonne/internal/pkg/idgen"
)

type RouterConfig struct {
	Hub       *ws.Hub
	Submitter ws.Submitter
	IDs       idgen.Generator
	Game      config.Game
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	// Pub/sub channel
	r.GET("/ws", cfg.Hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	rooms := r.Group("/api/rooms/:code")
	rooms.POST("/connections", ConnectHandler(cfg.IDs, cfg.Game))
	rooms.POST("/game-start", GameStartHandler(cfg.Submitter))
	rooms.POST("/tile-placed", TilePlacedHandler(cfg.Submitter))
	rooms.POST("/meeple-placed", MeeplePlacedHandler(cfg.Submitter))
	rooms.POST("/placing-skipped", PlacingSkippedHandler(cfg.Submitter))

	// --- CONFIG ENDPOINTS ---
	r.GET("/api/config", NewConfigHandler(cfg.Game).GetConfigHandler)
	r.GET("/healthz", HealthHandler)

	return r
}
