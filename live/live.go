// Package live pushes booking lifecycle events to connected admin dashboards
// over websockets. Events arrive on the Redis channel the emitter publishes
// to, so every instance of the server feeds its own connected clients.
package live

import (
	"context"
	"log"
	"net/http"
	"sync"

	"unwind/middleware"
	"unwind/mq"
	"unwind/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Subscribe relays booking events from Redis into the hub until ctx ends.
func (h *Hub) Subscribe(ctx context.Context) {
	sub := rdx.Conn.Subscribe(ctx, mq.Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		}
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// BookingsFeed upgrades the connection and streams booking events. Browsers
// cannot set an Authorization header on websocket requests, so the access
// token comes in as a query parameter.
func BookingsFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, err := middleware.ValidateRawJWT(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != "admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("live: upgrade:", err)
			return
		}

		c := &client{conn: conn, send: make(chan []byte, 256)}
		hub.register <- c
		go writePump(c)
		go readPump(c, hub)
	}
}

func writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump discards inbound frames; the feed is one-way. It exists to notice
// the close handshake and unregister the client.
func readPump(c *client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
