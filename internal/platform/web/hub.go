package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators never send payloads, only control frames.
	maxMessageSize = 512

	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Message is one frame sent to spectators of a game.
type Message struct {
	GameID string `json:"game_id"`
	Event  string `json:"event"`
	Data   any    `json:"data,omitempty"`
}

// client is a single websocket spectator.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	hello  []byte // first frame, queued on registration
}

// Hub fans game messages out to the websocket clients watching each game.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	games      map[string]map[*client]bool
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
	drop       chan string
	done       chan struct{}
	logger     *log.Logger
}

type outbound struct {
	gameID string
	data   []byte
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		games:      make(map[string]map[*client]bool),
		broadcast:  make(chan outbound, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		drop:       make(chan string),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case id := <-h.drop:
			for c := range h.games[id] {
				h.unregisterClient(c)
			}

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-ctx.Done():
			for _, clients := range h.games {
				for c := range clients {
					h.unregisterClient(c)
				}
			}
			return
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to gameID.
// hello is sent before any broadcast for the game.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string, hello []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game", gameID, "err", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		gameID: gameID,
		hello:  hello,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Broadcast sends an event to every client watching gameID.
func (h *Hub) Broadcast(gameID, event string, data any) {
	payload, err := json.Marshal(Message{GameID: gameID, Event: event, Data: data})
	if err != nil {
		h.logger.Error("could not encode message", "game", gameID, "event", event, "err", err)
		return
	}

	select {
	case h.broadcast <- outbound{gameID: gameID, data: payload}:
	case <-h.done:
	}
}

// Drop disconnects every client watching gameID.
func (h *Hub) Drop(gameID string) {
	select {
	case h.drop <- gameID:
	case <-h.done:
	}
}

func (h *Hub) registerClient(c *client) {
	if h.games[c.gameID] == nil {
		h.games[c.gameID] = make(map[*client]bool)
	}
	h.games[c.gameID][c] = true
	if c.hello != nil {
		c.send <- c.hello
	}

	h.logger.Debug("spectator joined", "game", c.gameID, "clients", len(h.games[c.gameID]))
}

func (h *Hub) unregisterClient(c *client) {
	clients, ok := h.games[c.gameID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.games, c.gameID)
	}

	h.logger.Debug("spectator left", "game", c.gameID, "clients", len(clients))
}

func (h *Hub) deliver(msg outbound) {
	for c := range h.games[msg.gameID] {
		select {
		case c.send <- msg.data:
		default:
			// slow reader
			h.unregisterClient(c)
		}
	}
}

// readPump drains control frames and notices disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "game", c.gameID, "err", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one frame each, and keeps the
// connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // a failed deadline shows up as a write error
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // peer may already be gone
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // a failed deadline shows up as a write error
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
