package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carcassonne/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, 12, cfg.Game.BoardWidth)
	assert.Equal(t, 8, cfg.Game.BoardHeight)
	assert.Equal(t, 7, cfg.Game.MeeplesPerPlayer)
	assert.Equal(t, ":44214", cfg.Server.HTTPAddr)
	assert.Equal(t, 4, cfg.Server.WorkerPoolSize)
	assert.Equal(t, 100, cfg.Server.QueueSize)
	assert.Equal(t, time.Second, cfg.Client.RetryDelay)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CARCASSONNE_BOARD_WIDTH", "20")
	t.Setenv("CARCASSONNE_SHUFFLE", "false")
	t.Setenv("CARCASSONNE_RETRY_DELAY", "250ms")
	t.Setenv("CARCASSONNE_WORKERS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 20, cfg.Game.BoardWidth)
	assert.False(t, cfg.Game.Shuffle)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.RetryDelay)
	assert.Equal(t, 4, cfg.Server.WorkerPoolSize)
}

func TestSettingsNotifiesObservers(t *testing.T) {
	s := config.NewSettings(config.Game{MeeplesPerPlayer: 5, Shuffle: true})
	calls := 0
	s.OnChange(func() { calls++ })

	assert.Equal(t, "ONE", s.PlayerName(0))
	s.SetPlayerName(0, "Ada")
	assert.Equal(t, "Ada", s.PlayerName(0))
	assert.Equal(t, 1, calls)

	s.SetShuffle(true)
	assert.Equal(t, 1, calls, "unchanged value must not notify")
	s.SetShuffle(false)
	assert.Equal(t, 2, calls)

	s.SetPlayerName(9, "nobody")
	assert.Equal(t, "", s.PlayerName(9))
	assert.Equal(t, 5, s.Meeples())
}
