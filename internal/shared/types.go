// Package shared holds the JSON wire contract between server and clients.
package shared

import (
	"encoding/json"

	"carcassonne/internal/game"
)

// Broadcast actions.
const (
	ActionWelcome        = "WELCOME"
	ActionGameStart      = "GAME_START"
	ActionTilePlaced     = "TILE_PLACED"
	ActionMeeplePlaced   = "MEEPLE_PLACED"
	ActionPlacingSkipped = "PLACING_SKIPPED"
)

// Connection roles. Requests go over HTTP, subscriptions over a websocket.
const (
	RoleRequest = "request"
	RolePubSub  = "pub-sub"
)

// HeaderSubscriberID names the subscriber a request originates from.
const HeaderSubscriberID = "X-Subscriber-ID"

type ResponseCode string

const (
	CodeOK    ResponseCode = "OK"
	CodeError ResponseCode = "ERROR"
)

type NewConnection struct {
	Role string `json:"role"`
}

// GameStart asks the server to seed a round for everyone subscribed to the room.
type GameStart struct {
	Shuffle *bool `json:"shuffle,omitempty"`
}

type TilePlaced struct {
	Player   int           `json:"player"`
	Tile     game.TileType `json:"tile"`
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Rotation int           `json:"rotation"`
}

// MeeplePlaced without a direction means the player placed no meeple.
type MeeplePlaced struct {
	Player    int             `json:"player"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Direction *game.Direction `json:"direction,omitempty"`
}

type PlacingSkipped struct {
	Player int `json:"player"`
}

type Response struct {
	Code         ResponseCode `json:"code"`
	Message      string       `json:"message,omitempty"`
	BoardWidth   int          `json:"boardWidth,omitempty"`
	BoardHeight  int          `json:"boardHeight,omitempty"`
	ConnectionID string       `json:"connectionId,omitempty"`
}

func OK() Response { return Response{Code: CodeOK} }

func Failure(message string) Response { return Response{Code: CodeError, Message: message} }

type Welcome struct {
	SubscriberID string `json:"subscriberId"`
	Subscribers  int    `json:"subscribers"`
}

// GameStarted is the GAME_START payload. Seats maps subscriber ids to player
// indices; PlayerIndex is filled in per connection before delivery.
type GameStarted struct {
	Seed        game.Seed      `json:"seed"`
	Seats       map[string]int `json:"seats,omitempty"`
	PlayerIndex int            `json:"playerIndex"`
}

// Broadcast is the envelope of every message on the pub/sub channel.
type Broadcast struct {
	Action     string          `json:"action"`
	Originator string          `json:"originator,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// NewBroadcast encodes data into an envelope.
func NewBroadcast(action, originator string, data any) (Broadcast, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Broadcast{}, err
	}
	return Broadcast{Action: action, Originator: originator, Data: raw}, nil
}
