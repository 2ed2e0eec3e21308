package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"carcassonne/internal/errors"
	"carcassonne/internal/pkg/idgen"
	"carcassonne/internal/relay"
	"carcassonne/internal/shared"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

type subscriber struct {
	id   string
	room string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Hub owns the pub/sub connections of every room and delivers broadcasts
// to them. It is the relay's publisher when the server runs alone.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*subscriber]struct{}
	submitter   Submitter
	lobby       Lobby
	ids         idgen.Generator
	idleTimeout time.Duration
}

type Config struct {
	Lobby       Lobby
	IDs         idgen.Generator
	IdleTimeout time.Duration
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Lobby == nil {
		return errors.InvalidArgument("lobby is required")
	}
	if c.IDs == nil {
		return errors.InvalidArgument("id generator is required")
	}
	if c.IdleTimeout <= 0 {
		return errors.InvalidArgumentf("idle timeout %s must be positive", c.IdleTimeout)
	}
	return nil
}

func NewHub(cfg *Config) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid hub config")
	}
	return &Hub{
		rooms:       make(map[string]map[*subscriber]struct{}),
		lobby:       cfg.Lobby,
		ids:         cfg.IDs,
		idleTimeout: cfg.IdleTimeout,
	}, nil
}

// Bind sets where welcome requests go. The relay publishes through the hub,
// so it can only be bound after both exist.
func (h *Hub) Bind(s Submitter) {
	h.mu.Lock()
	h.submitter = s
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, shared.Failure("missing room_code"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	var hello shared.NewConnection
	if err := conn.ReadJSON(&hello); err != nil || hello.Role != shared.RolePubSub {
		log.Printf("Rejecting connection to room %s: expected %s handshake", roomCode, shared.RolePubSub)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(shared.Failure("first message must be a pub-sub connection request"))
		return
	}

	sub := &subscriber{
		id:   h.ids.Generate(),
		room: roomCode,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	h.register(sub)
	defer h.unregister(sub)

	// The subscriber is in the lobby before it learns its id, so seats follow
	// the order of acknowledged handshakes. Its own welcome waits in the send
	// buffer until the pump starts.
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := h.welcome(c.Request.Context(), sub); err != nil {
		log.Printf("Failed to welcome subscriber %s: %v", sub.id, err)
		_ = conn.WriteJSON(shared.Failure(errors.GetMessage(err)))
		return
	}
	ack := shared.OK()
	ack.ConnectionID = sub.id
	if err := conn.WriteJSON(ack); err != nil {
		log.Printf("Failed to acknowledge subscriber in room %s: %v", roomCode, err)
		return
	}
	go h.writePump(sub)

	log.Printf("Subscriber %s connected to room %s", sub.id, roomCode)
	h.readPump(sub)
}

func (h *Hub) welcome(ctx context.Context, sub *subscriber) error {
	h.mu.RLock()
	submitter := h.submitter
	h.mu.RUnlock()
	if submitter == nil {
		return errors.Unavailable("hub is not bound to a relay")
	}
	_, err := submitter.Submit(ctx, relay.Request{
		Room:       sub.room,
		Originator: sub.id,
		Action:     shared.ActionWelcome,
	})
	return err
}

// readPump keeps the read deadline alive. Subscribers send nothing after
// the handshake, so any frame only counts as a sign of life.
func (h *Hub) readPump(sub *subscriber) {
	extend := func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	}
	sub.conn.SetPongHandler(extend)
	_ = extend("")
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Subscriber %s read error: %v", sub.id, err)
			}
			return
		}
		_ = extend("")
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(h.idleTimeout * 9 / 10)
	defer ticker.Stop()
	for {
		select {
		case <-sub.done:
			return
		case msg := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Failed to send message to %s: %v", sub.id, err)
				_ = sub.conn.Close()
				return
			}
		case <-ticker.C:
			if err := sub.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = sub.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) register(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[sub.room]; !ok {
		h.rooms[sub.room] = make(map[*subscriber]struct{})
	}
	h.rooms[sub.room][sub] = struct{}{}
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	delete(h.rooms[sub.room], sub)
	if len(h.rooms[sub.room]) == 0 {
		delete(h.rooms, sub.room)
	}
	h.mu.Unlock()
	close(sub.done)

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := h.lobby.RemoveSubscriber(ctx, sub.room, sub.id); err != nil {
		log.Printf("Failed to remove subscriber %s from room %s: %v", sub.id, sub.room, err)
	}
	log.Printf("Subscriber %s left room %s", sub.id, sub.room)
}

// Subscribers returns the number of open connections in a room.
func (h *Hub) Subscribers(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

// Publish queues msg for every connection of the room. A connection that
// cannot keep up is closed.
func (h *Hub) Publish(_ context.Context, roomCode string, msg shared.Broadcast) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return nil
	}
	var encoded []byte
	for sub := range clients {
		payload, err := h.encodeFor(sub, msg, &encoded)
		if err != nil {
			return err
		}
		select {
		case sub.send <- payload:
		default:
			log.Printf("Subscriber %s is too slow, disconnecting", sub.id)
			_ = sub.conn.Close()
		}
	}
	return nil
}

// encodeFor tells every subscriber of a starting round its own seat; all
// other broadcasts are encoded once and shared.
func (h *Hub) encodeFor(sub *subscriber, msg shared.Broadcast, cached *[]byte) ([]byte, error) {
	if msg.Action != shared.ActionGameStart {
		if *cached == nil {
			raw, err := json.Marshal(msg)
			if err != nil {
				return nil, errors.Wrap(err, "failed to encode broadcast")
			}
			*cached = raw
		}
		return *cached, nil
	}

	var started shared.GameStarted
	if err := json.Unmarshal(msg.Data, &started); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed game start")
	}
	seat, ok := started.Seats[sub.id]
	if !ok {
		seat = -1
	}
	started.PlayerIndex = seat
	personal, err := shared.NewBroadcast(msg.Action, msg.Originator, started)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode game start")
	}
	raw, err := json.Marshal(personal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode broadcast")
	}
	return raw, nil
}
