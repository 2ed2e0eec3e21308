package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carcassonne/internal/config"
)

type ConfigHandler struct {
	game config.Game
}

func NewConfigHandler(game config.Game) *ConfigHandler {
	return &ConfigHandler{game: game}
}

// GetConfigHandler returns the round configuration
// @Summary Get round configuration
// @Description Board size, meeples per player and the allowed player count
// @Tags Config
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /api/config [get]
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		BoardWidth:       h.game.BoardWidth,
		BoardHeight:      h.game.BoardHeight,
		MeeplesPerPlayer: h.game.MeeplesPerPlayer,
		Shuffle:          h.game.Shuffle,
		MinPlayers:       config.MinPlayers,
		MaxPlayers:       config.MaxPlayers,
	})
}

// @Summary Health check
// @Tags Config
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
