package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	MinPlayers = 2
	MaxPlayers = 5
)

type Game struct {
	BoardWidth       int
	BoardHeight      int
	MeeplesPerPlayer int
	Shuffle          bool
}

type Server struct {
	HTTPAddr       string
	WorkerPoolSize int
	QueueSize      int
	IdleTimeout    time.Duration
	RedisAddr      string // empty: single instance, the hub publishes directly
	RedisPrefix    string
}

type Client struct {
	ServerURL   string
	RetryDelay  time.Duration
	MaxAttempts int
}

type Config struct {
	Game   Game
	Server Server
	Client Client
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() Config {
	return Config{
		Game: Game{
			BoardWidth:       getenvInt("CARCASSONNE_BOARD_WIDTH", 12),
			BoardHeight:      getenvInt("CARCASSONNE_BOARD_HEIGHT", 8),
			MeeplesPerPlayer: getenvInt("CARCASSONNE_MEEPLES", 7),
			Shuffle:          getenvBool("CARCASSONNE_SHUFFLE", true),
		},
		Server: Server{
			HTTPAddr:       getenvString("CARCASSONNE_ADDR", ":44214"),
			WorkerPoolSize: getenvInt("CARCASSONNE_WORKERS", 4),
			QueueSize:      getenvInt("CARCASSONNE_QUEUE_SIZE", 100),
			IdleTimeout:    getenvDuration("CARCASSONNE_IDLE_TIMEOUT", 60*time.Second),
			RedisAddr:      getenvString("CARCASSONNE_REDIS_ADDR", ""),
			RedisPrefix:    getenvString("CARCASSONNE_REDIS_PREFIX", "carcassonne"),
		},
		Client: Client{
			ServerURL:   getenvString("CARCASSONNE_SERVER_URL", "http://localhost:44214"),
			RetryDelay:  getenvDuration("CARCASSONNE_RETRY_DELAY", time.Second),
			MaxAttempts: getenvInt("CARCASSONNE_MAX_ATTEMPTS", 5),
		},
	}
}
