/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/chaoskitchen/kitchen"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 64
)

const eventConnected = "connected"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// envelope is one inbound client message. Which fields are read depends on
// the event.
type envelope struct {
	Event    string `json:"event"`
	Name     string `json:"name"`
	RoomID   string `json:"room_id"`
	ItemName string `json:"item_name"`

	kitchen.Action
}

type connected struct {
	SID string `json:"sid"`
}

type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan kitchen.Message
	limiter *rate.Limiter
}

// Hub tracks connected clients and delivers engine events to them. It
// implements kitchen.Sender.
type Hub struct {
	cfg *Config

	mu      sync.Mutex
	clients map[string]*Client
}

func newHub(cfg *Config) *Hub {
	return &Hub{
		cfg:     cfg,
		clients: make(map[string]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.id] == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Send queues msg for conn. A client that cannot keep up is dropped rather
// than allowed to stall the room that is broadcasting.
func (h *Hub) Send(conn string, msg kitchen.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[conn]
	if !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, conn)
		close(c.send)

		h.cfg.logger.Warn().Str("conn", conn).Str("event", msg.Event).Msg("send buffer full, dropping client")
	}
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

// dispatch hands one client message to the engine.
func dispatch(mgr *kitchen.Manager, conn string, msg envelope) error {
	var err error

	switch msg.Event {
	case "create_room":
		mgr.CreateRoom(conn, msg.Name)
	case "join_room":
		err = mgr.JoinRoom(conn, msg.Name, msg.RoomID)
	case "start_game":
		mgr.StartGame(conn, msg.RoomID)
	case "player_action":
		err = mgr.PlayerAction(conn, msg.RoomID, msg.Action)
	case "use_ability":
		err = mgr.UseAbility(conn, msg.RoomID, msg.ItemName)
	case "leave_room":
		mgr.Leave(conn)
	default:
		return fmt.Errorf("%w: %q", errUnknownEvent, msg.Event)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", msg.Event, err)
	}
	return nil
}

func serveWS(cfg *Config, mgr *kitchen.Manager, hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan kitchen.Message, sendBuffer),
			limiter: rate.NewLimiter(rate.Limit(cfg.actionRate), cfg.actionBurst),
		}

		hub.register(client)
		hub.Send(client.id, kitchen.Message{Event: eventConnected, Data: connected{SID: client.id}})

		logf(cfg, "WS: Client %s connected from %s (%d online)", client.id, realIP(r), hub.count())

		go client.writePump()
		client.readPump(cfg, mgr, hub)
	}
}

func (c *Client) readPump(cfg *Config, mgr *kitchen.Manager, hub *Hub) {
	defer func() {
		hub.unregister(c)
		mgr.Leave(c.id)
		_ = c.conn.Close()

		logf(cfg, "WS: Client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logf(cfg, "WS: Client %s read error: %v", c.id, err)
			}
			return
		}

		if !c.limiter.Allow() {
			logf(cfg, "WS: Client %s rate limited", c.id)
			continue
		}

		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			logf(cfg, "WS: Client %s sent malformed message: %v", c.id, err)
			continue
		}

		if err := dispatch(mgr, c.id, msg); err != nil {
			logf(cfg, "WS: Client %s: %v", c.id, err)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// registerKitchen sets up routes so that:
//   - $path/ws          → websocket carrying the game protocol
//   - $path/qr/:room    → PNG QR code inviting to that room
func registerKitchen(cfg *Config, path string, mgr *kitchen.Manager, hub *Hub, errs chan<- error, mux *httprouter.Router) {
	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, mgr, hub))

	mux.GET(cfg.prefix+path+"/qr/:room", serveRoomQR(cfg, mgr, errs))
}
